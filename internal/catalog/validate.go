package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if err := validate.RegisterValidation("isbn_digits", validateISBNDigits); err != nil {
		panic(fmt.Sprintf("register isbn_digits validator: %v", err))
	}
}

// validateISBNDigits accepts integers with exactly 10 or 13 decimal digits.
func validateISBNDigits(fl validator.FieldLevel) bool {
	var n int64
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		n = fl.Field().Int()
	default:
		return false
	}
	if n < 0 {
		return false
	}
	digits := len(strconv.FormatInt(n, 10))
	return digits == 10 || digits == 13
}

// Validate checks v against its `validate` tags and converts failures into
// a *ValidationError named after entity.
func Validate(entity string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Entity: entity}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "isbn_digits":
		return fmt.Sprintf("%s must have exactly 10 or 13 digits", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
