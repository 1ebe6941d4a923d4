package dtos

import (
	"strconv"
	"strings"
	"time"

	"github.com/MatiasdeBuren/consorcio-console/internal/apierr"
)

type Amenity struct {
	ID                 int       `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Capacity           int       `json:"capacity"`
	OpensAt            string    `json:"opensAt"`  // "HH:MM"
	ClosesAt           string    `json:"closesAt"` // "HH:MM"
	RequiresApproval   bool      `json:"requiresApproval"`
	ActiveReservations int       `json:"activeReservations"`
	CreatedAt          time.Time `json:"createdAt"`
}

// EntityID implements manager.Entity.
func (a Amenity) EntityID() int { return a.ID }

type AmenityRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=60"`
	Description      string `json:"description,omitempty" validate:"omitempty,max=300"`
	Capacity         int    `json:"capacity" validate:"required,gt=0"`
	OpensAt          string `json:"opensAt" validate:"required"`
	ClosesAt         string `json:"closesAt" validate:"required"`
	RequiresApproval bool   `json:"requiresApproval"`
}

// AmenityDraft mirrors the create/edit form inputs one to one.
type AmenityDraft struct {
	Name             string
	Description      string
	Capacity         string
	OpensAt          string
	ClosesAt         string
	RequiresApproval bool
}

func (d AmenityDraft) ToRequest() (AmenityRequest, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return AmenityRequest{}, apierr.Validation("El nombre del amenity es obligatorio.")
	}
	capacity, err := strconv.Atoi(strings.TrimSpace(d.Capacity))
	if err != nil || capacity <= 0 {
		return AmenityRequest{}, apierr.Validation("La capacidad debe ser un número positivo.")
	}
	opensAt, closesAt := strings.TrimSpace(d.OpensAt), strings.TrimSpace(d.ClosesAt)
	if !validClockTime(opensAt) || !validClockTime(closesAt) {
		return AmenityRequest{}, apierr.Validation("Los horarios deben tener formato HH:MM.")
	}
	if closesAt <= opensAt {
		return AmenityRequest{}, apierr.Validation("El horario de cierre debe ser posterior al de apertura.")
	}
	req := AmenityRequest{
		Name:             name,
		Description:      strings.TrimSpace(d.Description),
		Capacity:         capacity,
		OpensAt:          opensAt,
		ClosesAt:         closesAt,
		RequiresApproval: d.RequiresApproval,
	}
	if vErr := checkStruct(req); vErr != nil {
		return AmenityRequest{}, vErr
	}
	return req, nil
}

func DraftFromAmenity(a Amenity) AmenityDraft {
	return AmenityDraft{
		Name:             a.Name,
		Description:      a.Description,
		Capacity:         strconv.Itoa(a.Capacity),
		OpensAt:          a.OpensAt,
		ClosesAt:         a.ClosesAt,
		RequiresApproval: a.RequiresApproval,
	}
}

// validClockTime accepts "HH:MM" in 24h time. Lexicographic comparison of two
// valid values matches chronological order, which ToRequest relies on.
func validClockTime(s string) bool {
	t, err := time.Parse("15:04", s)
	return err == nil && t.Format("15:04") == s
}
