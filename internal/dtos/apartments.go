package dtos

import (
	"strconv"
	"strings"
	"time"

	"github.com/MatiasdeBuren/consorcio-console/internal/apierr"
)

type Apartment struct {
	ID            int       `json:"id"`
	Number        string    `json:"number"`
	Floor         int       `json:"floor"`
	OwnerName     string    `json:"ownerName,omitempty"`
	ResidentCount int       `json:"residentCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// EntityID implements manager.Entity.
func (a Apartment) EntityID() int { return a.ID }

type ApartmentRequest struct {
	Number    string `json:"number" validate:"required,min=1,max=10"`
	Floor     int    `json:"floor" validate:"gte=0"`
	OwnerName string `json:"ownerName,omitempty" validate:"omitempty,max=100"`
}

// ApartmentDraft mirrors the create/edit form inputs one to one. Numeric
// fields stay strings until ToRequest, matching how the form holds them.
type ApartmentDraft struct {
	Number    string
	Floor     string
	OwnerName string
}

func (d ApartmentDraft) ToRequest() (ApartmentRequest, error) {
	number := strings.TrimSpace(d.Number)
	if number == "" {
		return ApartmentRequest{}, apierr.Validation("El número de departamento es obligatorio.")
	}
	floor, err := strconv.Atoi(strings.TrimSpace(d.Floor))
	if err != nil || floor < 0 {
		return ApartmentRequest{}, apierr.Validation("El piso debe ser un número mayor o igual a cero.")
	}
	req := ApartmentRequest{
		Number:    number,
		Floor:     floor,
		OwnerName: strings.TrimSpace(d.OwnerName),
	}
	if vErr := checkStruct(req); vErr != nil {
		return ApartmentRequest{}, vErr
	}
	return req, nil
}

func DraftFromApartment(a Apartment) ApartmentDraft {
	return ApartmentDraft{
		Number:    a.Number,
		Floor:     strconv.Itoa(a.Floor),
		OwnerName: a.OwnerName,
	}
}
