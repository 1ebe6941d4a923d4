package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Machine-readable error codes shared with the backend. The backend started
// emitting a structured `code` field mid-project; older deployments only send
// free-text Spanish messages, so both paths are handled here.
const (
	CodeUnauthorized   = "unauthorized"
	CodeForbidden      = "forbidden"
	CodeNotFound       = "not_found"
	CodeConflict       = "conflict"
	CodeValidation     = "validation_error"
	CodeInvalidPayload = "invalid_payload"
	CodeServer         = "server_error"
	CodeNetwork        = "network_error"
)

// Resource identifies which API surface an error came from, so 404/409 can be
// mapped to a message naming the right thing.
type Resource string

const (
	ResourceUsers        Resource = "users"
	ResourceApartments   Resource = "apartments"
	ResourceAmenities    Resource = "amenities"
	ResourceReservations Resource = "reservations"
	ResourceExpenses     Resource = "expenses"
	ResourcePayments     Resource = "payments"
	ResourceStats        Resource = "stats"
	ResourceClaims       Resource = "claims"
)

// APIError is the structured error every client call returns on failure.
// Message is user-facing Spanish; Err keeps the underlying cause for logs.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Validation builds the error returned when a draft fails client-side checks,
// before any network call.
func Validation(message string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       CodeValidation,
		Message:    message,
	}
}

// Network wraps transport and decode failures.
func Network(err error) *APIError {
	return &APIError{
		Code:    CodeNetwork,
		Message: "No se pudo conectar con el servidor.",
		Err:     err,
	}
}

const (
	MsgUnauthorized = "Token inválido o expirado."
	MsgForbidden    = "Se requieren permisos de administrador."
)

var notFoundMessages = map[Resource]string{
	ResourceUsers:        "Usuario no encontrado.",
	ResourceApartments:   "Departamento no encontrado.",
	ResourceAmenities:    "Amenity no encontrado.",
	ResourceReservations: "Reserva no encontrada.",
	ResourceExpenses:     "Expensa no encontrada.",
	ResourcePayments:     "Pago no encontrado.",
}

var conflictMessages = map[Resource]string{
	ResourceApartments:   "No se puede eliminar: el departamento tiene residentes asignados.",
	ResourceAmenities:    "No se puede eliminar: el amenity tiene reservas activas.",
	ResourceReservations: "La reserva ya fue procesada.",
	ResourceExpenses:     "No se puede eliminar: la expensa tiene pagos registrados.",
}

// FromStatus maps a non-2xx response to an APIError with a localized message.
// serverCode/serverMsg come from the response body when it was parseable.
func FromStatus(resource Resource, status int, serverCode, serverMsg string) *APIError {
	e := &APIError{StatusCode: status, Code: serverCode}
	if serverMsg != "" {
		e.Err = errors.New(serverMsg)
	}

	switch status {
	case http.StatusUnauthorized:
		if e.Code == "" {
			e.Code = CodeUnauthorized
		}
		e.Message = MsgUnauthorized
	case http.StatusForbidden:
		if e.Code == "" {
			e.Code = CodeForbidden
		}
		e.Message = MsgForbidden
	case http.StatusNotFound:
		if e.Code == "" {
			e.Code = CodeNotFound
		}
		e.Message = messageOr(notFoundMessages, resource, "Recurso no encontrado.")
	case http.StatusConflict:
		if e.Code == "" {
			e.Code = CodeConflict
		}
		e.Message = messageOr(conflictMessages, resource, "El recurso tiene dependencias activas.")
	default:
		if e.Code == "" {
			e.Code = CodeServer
		}
		e.Message = fmt.Sprintf("Error del servidor: %d", status)
	}
	return e
}

func messageOr(table map[Resource]string, resource Resource, fallback string) string {
	if msg, ok := table[resource]; ok {
		return msg
	}
	return fallback
}

// RefineDeleteError is legacy behavior kept for compatibility: when a delete
// fails and the backend sent no structured code, the server's free-text
// message is sniffed for known phrases to pick a friendlier string. Any change
// in server wording falls through to the generic message.
func RefineDeleteError(resource Resource, err error) *APIError {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return &APIError{Code: CodeServer, Message: "Error al eliminar.", Err: err}
	}
	if apiErr.Code != "" && apiErr.Code != CodeServer {
		return apiErr
	}

	serverText := ""
	if apiErr.Err != nil {
		serverText = strings.ToLower(apiErr.Err.Error())
	}
	switch {
	case strings.Contains(serverText, "reservas activas"):
		apiErr.Code = CodeConflict
		apiErr.Message = messageOr(conflictMessages, resource, apiErr.Message)
	case strings.Contains(serverText, "acceso denegado"):
		apiErr.Code = CodeForbidden
		apiErr.Message = MsgForbidden
	case strings.Contains(serverText, "no encontrado"):
		apiErr.Code = CodeNotFound
		apiErr.Message = messageOr(notFoundMessages, resource, apiErr.Message)
	}
	return apiErr
}
