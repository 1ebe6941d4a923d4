package dtos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatiasdeBuren/consorcio-console/internal/apierr"
)

func requireValidationMessage(t *testing.T, err error, want string) {
	t.Helper()
	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierr.CodeValidation, apiErr.Code)
	assert.Equal(t, want, apiErr.Message)
}

func validAmenityDraft() AmenityDraft {
	return AmenityDraft{
		Name:     "Pileta",
		Capacity: "20",
		OpensAt:  "08:00",
		ClosesAt: "20:00",
	}
}

func TestAmenityDraftToRequest(t *testing.T) {
	t.Run("valid draft", func(t *testing.T) {
		draft := validAmenityDraft()
		draft.Description = "  Climatizada  "
		req, err := draft.ToRequest()
		require.NoError(t, err)
		assert.Equal(t, 20, req.Capacity)
		assert.Equal(t, "Climatizada", req.Description)
	})

	t.Run("empty name", func(t *testing.T) {
		draft := validAmenityDraft()
		draft.Name = "   "
		_, err := draft.ToRequest()
		requireValidationMessage(t, err, "El nombre del amenity es obligatorio.")
	})

	t.Run("capacity must be a positive number", func(t *testing.T) {
		for _, capacity := range []string{"-1", "0", "abc", ""} {
			draft := validAmenityDraft()
			draft.Capacity = capacity
			_, err := draft.ToRequest()
			requireValidationMessage(t, err, "La capacidad debe ser un número positivo.")
		}
	})

	t.Run("hours must be HH:MM", func(t *testing.T) {
		draft := validAmenityDraft()
		draft.OpensAt = "8am"
		_, err := draft.ToRequest()
		requireValidationMessage(t, err, "Los horarios deben tener formato HH:MM.")
	})

	t.Run("closing must follow opening", func(t *testing.T) {
		draft := validAmenityDraft()
		draft.OpensAt, draft.ClosesAt = "20:00", "08:00"
		_, err := draft.ToRequest()
		requireValidationMessage(t, err, "El horario de cierre debe ser posterior al de apertura.")
	})
}

func TestDraftFromAmenityRoundTrip(t *testing.T) {
	amenity := Amenity{
		Name:             "SUM",
		Description:      "Planta baja",
		Capacity:         50,
		OpensAt:          "10:00",
		ClosesAt:         "23:00",
		RequiresApproval: true,
	}
	req, err := DraftFromAmenity(amenity).ToRequest()
	require.NoError(t, err)
	assert.Equal(t, amenity.Name, req.Name)
	assert.Equal(t, amenity.Capacity, req.Capacity)
	assert.Equal(t, amenity.RequiresApproval, req.RequiresApproval)
}

func TestApartmentDraftToRequest(t *testing.T) {
	t.Run("valid draft", func(t *testing.T) {
		req, err := ApartmentDraft{Number: " 4B ", Floor: "0", OwnerName: "Pérez"}.ToRequest()
		require.NoError(t, err)
		assert.Equal(t, "4B", req.Number)
		assert.Equal(t, 0, req.Floor, "ground floor is a valid floor")
	})

	t.Run("empty number", func(t *testing.T) {
		_, err := ApartmentDraft{Number: "", Floor: "1"}.ToRequest()
		requireValidationMessage(t, err, "El número de departamento es obligatorio.")
	})

	t.Run("negative or non-numeric floor", func(t *testing.T) {
		for _, floor := range []string{"-1", "pb", ""} {
			_, err := ApartmentDraft{Number: "4B", Floor: floor}.ToRequest()
			requireValidationMessage(t, err, "El piso debe ser un número mayor o igual a cero.")
		}
	})
}

func TestUserRoleDraftToRequest(t *testing.T) {
	t.Run("accepted roles", func(t *testing.T) {
		for _, role := range []string{"RESIDENT", "ADMIN"} {
			req, err := UserRoleDraft{Role: role}.ToRequest()
			require.NoError(t, err)
			assert.Equal(t, UserRole(role), req.Role)
		}
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := UserRoleDraft{Role: "SUPERUSER"}.ToRequest()
		var apiErr *apierr.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, apierr.CodeValidation, apiErr.Code)
	})
}

func TestExpenseDraftToRequest(t *testing.T) {
	valid := ExpenseDraft{
		ApartmentID: "4",
		TypeID:      "1",
		Amount:      "1500.50",
		Period:      "2026-08",
		DueDate:     "2026-09-10",
	}

	t.Run("valid draft", func(t *testing.T) {
		req, err := valid.ToRequest()
		require.NoError(t, err)
		assert.Equal(t, 4, req.ApartmentID)
		assert.Equal(t, 1500.50, req.Amount)
	})

	t.Run("apartment required", func(t *testing.T) {
		draft := valid
		draft.ApartmentID = ""
		_, err := draft.ToRequest()
		requireValidationMessage(t, err, "Debe seleccionar un departamento.")
	})

	t.Run("amount must be positive", func(t *testing.T) {
		draft := valid
		draft.Amount = "-3"
		_, err := draft.ToRequest()
		requireValidationMessage(t, err, "El monto debe ser un número positivo.")
	})

	t.Run("period format", func(t *testing.T) {
		draft := valid
		draft.Period = "08/2026"
		_, err := draft.ToRequest()
		requireValidationMessage(t, err, "El período debe tener formato AAAA-MM.")
	})

	t.Run("due date format", func(t *testing.T) {
		draft := valid
		draft.DueDate = "10-09-2026"
		_, err := draft.ToRequest()
		requireValidationMessage(t, err, "La fecha de vencimiento debe tener formato AAAA-MM-DD.")
	})
}

func TestPaymentDraftToRequest(t *testing.T) {
	t.Run("valid draft", func(t *testing.T) {
		req, err := PaymentDraft{Amount: "500", MethodID: "2"}.ToRequest()
		require.NoError(t, err)
		assert.Equal(t, 500.0, req.Amount)
		assert.Equal(t, 2, req.MethodID)
	})

	t.Run("method required", func(t *testing.T) {
		_, err := PaymentDraft{Amount: "500", MethodID: "0"}.ToRequest()
		requireValidationMessage(t, err, "Debe seleccionar un método de pago.")
	})
}

func TestFieldErrorMessages(t *testing.T) {
	// Tag-level messages come from the shared validator translation.
	_, err := ApartmentDraft{Number: "una numeración larguísima", Floor: "1"}.ToRequest()
	requireValidationMessage(t, err, "El campo 'Number' no puede superar 10 caracteres.")
}
