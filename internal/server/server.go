// Package server exposes the calculators over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/iwvelando/investment-calculator/internal/calculator"
	"github.com/iwvelando/investment-calculator/internal/config"
	"github.com/iwvelando/investment-calculator/pkg/constants"
	"github.com/iwvelando/investment-calculator/pkg/finance"
	"github.com/iwvelando/investment-calculator/pkg/format"
	"github.com/iwvelando/investment-calculator/pkg/output"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

type handler struct {
	logger         *zap.Logger
	calc           *calculator.Calculator
	formatter      *format.Formatter
	maxRequestSize int64
	version        string
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, calc *calculator.Calculator, formatter *format.Formatter, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if calc == nil {
		calc = calculator.New(logger, finance.DefaultSolver())
	}
	if formatter == nil {
		formatter = format.MustFormatter(constants.DefaultLocale, constants.DefaultCurrency)
	}
	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		calc:           calc,
		formatter:      formatter,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", h.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/variants", h.handleVariants)
		r.Post("/calculate/{variant}", h.handleCalculate)
		r.Post("/batch", h.handleBatch)
	})

	return r
}

// requestID reuses an incoming X-Request-ID or assigns a new UUID, and
// stores it where middleware.GetReqID finds it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.logger.Info("HTTP request",
			zap.String("op", "server.logRequests"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestID", middleware.GetReqID(r.Context())),
		)
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

type variantInfo struct {
	Name       string             `json:"name"`
	Title      string             `json:"title"`
	PeriodUnit string             `json:"periodUnit"`
	Fields     []calculator.Field `json:"fields"`
}

func (h *handler) handleVariants(w http.ResponseWriter, r *http.Request) {
	variants := calculator.Variants()
	infos := make([]variantInfo, 0, len(variants))
	for _, v := range variants {
		infos = append(infos, variantInfo{
			Name:       string(v),
			Title:      v.Title(),
			PeriodUnit: v.PeriodUnit(),
			Fields:     calculator.FieldsFor(v),
		})
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"variants": infos})
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"

	variant, err := calculator.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusNotFound, calculator.UserMessage(err), op, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	values, err := readValues(r, variant)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op, err)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op, err)
		return
	}

	in, err := calculator.ParseFields(variant, values)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, calculator.UserMessage(err), op, err)
		return
	}

	result, err := h.calc.Calculate("", variant, in)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, calculator.UserMessage(err), op, err)
		return
	}

	h.writeJSON(w, http.StatusOK, output.Render(result, h.formatter))
}

// readValues collects the raw field values for variant from a form-encoded
// or JSON body. JSON numbers and strings are both accepted.
func readValues(r *http.Request, variant calculator.Variant) (map[string]string, error) {
	values := make(map[string]string)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		var payload map[string]interface{}
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&payload); err != nil {
			return nil, err
		}
		for _, field := range calculator.FieldsFor(variant) {
			raw, ok := payload[field.Name]
			if !ok || raw == nil {
				continue
			}
			switch v := raw.(type) {
			case json.Number:
				values[field.Name] = v.String()
			case string:
				values[field.Name] = v
			default:
				return nil, fmt.Errorf("field %s must be a number or string", field.Name)
			}
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	for _, field := range calculator.FieldsFor(variant) {
		values[field.Name] = r.PostForm.Get(field.Name)
	}
	return values, nil
}

type batchResponse struct {
	Results  []output.Rendered `json:"results"`
	CSV      string            `json:"csv"`
	Warnings []string          `json:"warnings,omitempty"`
	Duration string            `json:"duration"`
}

// handleBatch runs every active calculation of a YAML configuration body,
// using that configuration's display and solver settings.
func (h *handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBatch"
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r.Body); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op, err)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read configuration: %v", err), op, err)
		return
	}

	cfg, err := config.ParseConfiguration(&buf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op, err)
		return
	}

	locale, currency := cfg.DisplaySettings()
	formatter, err := format.NewFormatter(locale, currency)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op, err)
		return
	}

	warnings := cfg.ValidateConfiguration()
	results := calculator.New(h.logger, cfg.SolverSettings()).Run(*cfg)

	csvData, err := output.CsvString(results)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op, err)
		return
	}

	rendered := make([]output.Rendered, 0, len(results))
	for _, result := range results {
		rendered = append(rendered, output.Render(result, formatter))
	}

	elapsed := time.Since(start)
	h.logger.Info("batch computed",
		zap.String("op", op),
		zap.Int("calculations", len(results)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, batchResponse{
		Results:  rendered,
		CSV:      csvData,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string, err error) {
	h.logger.Warn("calculation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("message", msg),
		zap.Error(err),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
