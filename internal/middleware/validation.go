package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/quizapi/internal/app/models"
	"github.com/yigit/quizapi/internal/pkg/validation"
)

// RegisterValidators adds the custom binding tags used by the request DTOs
// ("difficulty" and "role") to gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		return validation.IsValidDifficulty(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register difficulty validator: %w", err)
	}

	if err := v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseRole(fl.Field().String())
		return ok
	}); err != nil {
		return fmt.Errorf("failed to register role validator: %w", err)
	}

	return nil
}
