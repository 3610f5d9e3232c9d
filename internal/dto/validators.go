package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidations wires decimal-aware rules into gin's binding
// validator. Must run once at startup, before any route binds a request.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// The required tag cannot see inside decimal.Decimal, so amounts get
	// their own rule checking strict positivity.
	return v.RegisterValidation("positivedecimal", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return value.IsPositive()
	})
}
