package validation

import (
	"errors"
	"strings"
	"sync"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Registration of a fixed tag on a fresh validator cannot fail.
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Struct checks v's `validate` tags and reports failures as a validation AppError
// whose details map each failing field to its rule.
func Struct(v any, message string) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Validation(message)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return apperrors.Validation(message).WithDetails(details)
}
