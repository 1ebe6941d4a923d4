package apierr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStatus(t *testing.T) {
	cases := []struct {
		name        string
		resource    Resource
		status      int
		serverCode  string
		serverMsg   string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "401 always maps to the session message",
			resource:    ResourceUsers,
			status:      http.StatusUnauthorized,
			wantCode:    CodeUnauthorized,
			wantMessage: MsgUnauthorized,
		},
		{
			name:        "403 maps to the admin message",
			resource:    ResourceStats,
			status:      http.StatusForbidden,
			wantCode:    CodeForbidden,
			wantMessage: MsgForbidden,
		},
		{
			name:        "404 names the resource",
			resource:    ResourceApartments,
			status:      http.StatusNotFound,
			wantCode:    CodeNotFound,
			wantMessage: "Departamento no encontrado.",
		},
		{
			name:        "404 on unmapped resource falls back",
			resource:    ResourceStats,
			status:      http.StatusNotFound,
			wantCode:    CodeNotFound,
			wantMessage: "Recurso no encontrado.",
		},
		{
			name:        "409 names the dependency",
			resource:    ResourceAmenities,
			status:      http.StatusConflict,
			wantCode:    CodeConflict,
			wantMessage: "No se puede eliminar: el amenity tiene reservas activas.",
		},
		{
			name:        "server code from the body wins",
			resource:    ResourceUsers,
			status:      http.StatusUnauthorized,
			serverCode:  "token_expired",
			wantCode:    "token_expired",
			wantMessage: MsgUnauthorized,
		},
		{
			name:        "unexpected status becomes generic",
			resource:    ResourceUsers,
			status:      http.StatusBadGateway,
			wantCode:    CodeServer,
			wantMessage: "Error del servidor: 502",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := FromStatus(tc.resource, tc.status, tc.serverCode, tc.serverMsg)
			assert.Equal(t, tc.status, err.StatusCode)
			assert.Equal(t, tc.wantCode, err.Code)
			assert.Equal(t, tc.wantMessage, err.Message)
		})
	}
}

func TestFromStatusKeepsServerTextAsCause(t *testing.T) {
	err := FromStatus(ResourceAmenities, http.StatusInternalServerError, "", "algo explotó")
	require.Error(t, err.Err)
	assert.Equal(t, "algo explotó", err.Err.Error())
	assert.Equal(t, "Error del servidor: 500", err.Error(), "user-facing text stays localized")
}

func TestErrorStringFallbacks(t *testing.T) {
	assert.Equal(t, "mensaje", (&APIError{Message: "mensaje"}).Error())
	assert.Equal(t, "causa", (&APIError{Err: errors.New("causa")}).Error())
	assert.Equal(t, CodeServer, (&APIError{Code: CodeServer}).Error())
}

func TestValidationAndNetwork(t *testing.T) {
	v := Validation("El monto debe ser un número positivo.")
	assert.Equal(t, http.StatusBadRequest, v.StatusCode)
	assert.Equal(t, CodeValidation, v.Code)

	cause := errors.New("dial tcp: connection refused")
	n := Network(cause)
	assert.Equal(t, CodeNetwork, n.Code)
	assert.Equal(t, "No se pudo conectar con el servidor.", n.Message)
	assert.ErrorIs(t, n, cause)
}

func TestRefineDeleteError(t *testing.T) {
	t.Run("structured codes pass through untouched", func(t *testing.T) {
		orig := FromStatus(ResourceAmenities, http.StatusConflict, "conflict", "whatever")
		refined := RefineDeleteError(ResourceAmenities, orig)
		assert.Same(t, orig, refined)
	})

	t.Run("free text is sniffed for known phrases", func(t *testing.T) {
		orig := FromStatus(ResourceAmenities, http.StatusInternalServerError, "", "El Amenity tiene RESERVAS ACTIVAS")
		refined := RefineDeleteError(ResourceAmenities, orig)
		assert.Equal(t, CodeConflict, refined.Code)
		assert.Equal(t, "No se puede eliminar: el amenity tiene reservas activas.", refined.Message)
	})

	t.Run("unknown text keeps generic message", func(t *testing.T) {
		orig := FromStatus(ResourceAmenities, http.StatusInternalServerError, "", "se rompió todo")
		refined := RefineDeleteError(ResourceAmenities, orig)
		assert.Equal(t, CodeServer, refined.Code)
		assert.Equal(t, "Error del servidor: 500", refined.Message)
	})

	t.Run("non-API errors get wrapped", func(t *testing.T) {
		cause := errors.New("boom")
		refined := RefineDeleteError(ResourceAmenities, cause)
		assert.Equal(t, CodeServer, refined.Code)
		assert.Equal(t, "Error al eliminar.", refined.Message)
		assert.ErrorIs(t, refined, cause)
	})
}
