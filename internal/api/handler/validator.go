package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/panaderia/backend/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field errors are reported under their JSON names.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Failures are
// *domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return domain.Invalid(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " es obligatorio"
	case "email":
		return field + " debe ser un correo válido"
	case "mongodb":
		return field + " debe ser un ID válido"
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual que %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s debe ser menor o igual que %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s %s", field, fe.Param(), unit(fe))
	case "max":
		return fmt.Sprintf("%s debe tener como máximo %s %s", field, fe.Param(), unit(fe))
	default:
		return fmt.Sprintf("%s no es válido (%s)", field, fe.Tag())
	}
}

// unit names what min/max count for the field's kind.
func unit(fe validator.FieldError) string {
	if fe.Kind() == reflect.String {
		return "caracteres"
	}
	return "elementos"
}
