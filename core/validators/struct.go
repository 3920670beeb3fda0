package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names, as the forms send them.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("piva", func(fl validator.FieldLevel) bool {
		return IsValidTaxID(fl.Field().String())
	})
	_ = v.RegisterValidation("iban", func(fl validator.FieldLevel) bool {
		return IsValidIBAN(fl.Field().String())
	})
	return v
}

// Struct checks the `validate` tags of v and returns a *ValidationError
// keyed by JSON field name, or nil. Besides the stock tags it knows
// piva and iban.
func Struct(v any) error {
	err := defaultValidator.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate %T: %w", v, err)
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		name := fe.Field()
		if name == "" {
			name = fe.StructField()
		}
		verr.Add(name, message(fe))
	}
	return verr.OrNil()
}

func message(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return "required"
	case "piva":
		return "invalid tax identifier"
	case "iban":
		return "invalid IBAN"
	case "email":
		return "invalid email"
	case "oneof":
		return "must be " + strings.Join(strings.Fields(fe.Param()), " or ")
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "invalid"
	}
}
