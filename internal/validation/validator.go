// Package validation validates request structs using go-playground/validator.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/quotebook/quotebook-server/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "":
			return fld.Name
		case "-":
			return ""
		}
		return name
	})

	return &Validator{v: v}
}

// Validate validates s and returns a Validation-kind error naming every
// offending field.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// InvalidInputMessage is the client message for a set of rejected fields.
func InvalidInputMessage(fields []string) string {
	if len(fields) == 0 {
		return "Invalid or missing input provided."
	}
	plural := ""
	if len(fields) > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Invalid or missing input%s provided for: %s", plural, strings.Join(fields, ", "))
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var fields []string
	details := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		// "tags[2]" is reported as "tags".
		field, _, _ := strings.Cut(e.Field(), "[")
		if !slices.Contains(fields, field) {
			fields = append(fields, field)
		}
		if _, ok := details[field]; !ok {
			details[field] = friendlyMessage(e)
		}
	}

	return domainerrors.ValidationWithDetails(InvalidInputMessage(fields), details)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("must not contain more than %s items", e.Param())
		}
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "notblank":
		return "must not be blank"
	case "printascii", "alphanum":
		return "contains unsupported characters"
	default:
		return "is invalid"
	}
}
