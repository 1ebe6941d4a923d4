package dtos

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/MatiasdeBuren/consorcio-console/internal/apierr"
)

var validate = validator.New()

// checkStruct runs validator tags over an already-parsed request and converts
// the first failure into a localized validation error.
func checkStruct(req any) *apierr.APIError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return apierr.Validation("Datos del formulario inválidos.")
	}
	return apierr.Validation(formatFieldError(validationErrs[0]))
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo '%s' es obligatorio.", fe.Field())
	case "email":
		return fmt.Sprintf("El campo '%s' debe ser un email válido.", fe.Field())
	case "min":
		return fmt.Sprintf("El campo '%s' debe tener al menos %s caracteres.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("El campo '%s' no puede superar %s caracteres.", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("El campo '%s' debe ser mayor a %s.", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("El campo '%s' debe ser mayor o igual a %s.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("El campo '%s' debe ser uno de [%s].", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("El campo '%s' no pasó la validación '%s'.", fe.Field(), fe.Tag())
	}
}
