package dtos

import (
	"time"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationApproved  ReservationStatus = "APPROVED"
	ReservationRejected  ReservationStatus = "REJECTED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

type Reservation struct {
	ID          int               `json:"id"`
	AmenityID   int               `json:"amenityId"`
	AmenityName string            `json:"amenityName"`
	UserID      int               `json:"userId"`
	UserName    string            `json:"userName"`
	ApartmentID *int              `json:"apartmentId,omitempty"`
	StartsAt    time.Time         `json:"startsAt"`
	EndsAt      time.Time         `json:"endsAt"`
	Status      ReservationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// EntityID implements manager.Entity.
func (r Reservation) EntityID() int { return r.ID }
