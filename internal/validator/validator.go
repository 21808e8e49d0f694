// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"outlay/internal/models"
	"outlay/internal/recurrence"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("recurrence_unit", validateRecurrenceUnit)
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
		_ = v.RegisterValidation("percent_modifier", validatePercentModifier)
		_ = v.RegisterValidation("modifier_target", validateModifierTarget)
	}
}

func validateRecurrenceUnit(fl validator.FieldLevel) bool {
	return recurrence.Unit(fl.Field().String()).Valid()
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	return models.ExpenseCategory(fl.Field().String()).Valid()
}

func validatePercentModifier(fl validator.FieldLevel) bool {
	return models.PercentModifier(fl.Field().String()).Valid()
}

func validateModifierTarget(fl validator.FieldLevel) bool {
	return models.ModifierTarget(fl.Field().String()).Valid()
}
