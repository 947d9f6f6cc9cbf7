// Package validation checks entity forms before they are sent to the API.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/evcraddock/rentdesk/internal/resource"
)

// Enum is implemented by string enums that know their allowed values.
type Enum interface {
	Valid() bool
}

// FieldError is a single failed rule on a form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Errors is returned when a form fails validation.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return "invalid form: " + strings.Join(msgs, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	mustRegister(v, "enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(Enum)
		return ok && e.Valid()
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, err := resource.ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

// jsonName reports fields by their wire name so messages match the API.
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// Struct validates a form. It returns Errors when any rule fails.
func Struct(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating form: %w", err)
	}
	return format(verrs)
}

func format(verrs validator.ValidationErrors) Errors {
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
			Code:    "validation_" + fe.Tag(),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if isText {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", field, fe.Param())
	case "ltefield":
		return fmt.Sprintf("%s cannot exceed %s", field, lowerFirst(fe.Param()))
	case "enum":
		return fmt.Sprintf("%s has unknown value %q", field, fmt.Sprint(fe.Value()))
	case "isodate":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	}
	return fmt.Sprintf("%s failed the %s rule", field, fe.Tag())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
