package config

import (
	"github.com/iwvelando/investment-calculator/pkg/validation"
)

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	calculations := make([]validation.CalculationConfig, 0, len(c.Calculations))
	for _, calc := range c.Calculations {
		calculations = append(calculations, validation.CalculationConfig{
			Name:            calc.Name,
			Type:            calc.Type,
			Active:          calc.Active,
			Periods:         calc.Periods,
			Payment:         calc.Payment,
			PresentValue:    calc.PresentValue,
			FutureValue:     calc.FutureValue,
			TotalInvestment: calc.TotalInvestment,
			Timing:          calc.Timing,
		})
	}

	validator := validation.ConfigValidator{Calculations: calculations}
	warnings := validator.ValidateAll()

	if err := c.SolverSettings().Validate(); err != nil {
		warnings = append(warnings, "Invalid solver settings, rate calculations will fail: "+err.Error())
	}
	return warnings
}
