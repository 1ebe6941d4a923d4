package dtos

import (
	"time"
)

type UserRole string

const (
	RoleResident UserRole = "RESIDENT"
	RoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        UserRole  `json:"role"`
	ApartmentID *int      `json:"apartmentId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EntityID implements manager.Entity.
func (u User) EntityID() int { return u.ID }

type UpdateUserRoleRequest struct {
	Role UserRole `json:"role" validate:"required,oneof=RESIDENT ADMIN"`
}

// UserRoleDraft is the form-side draft for the role change dialog.
type UserRoleDraft struct {
	Role string
}

func (d UserRoleDraft) ToRequest() (UpdateUserRoleRequest, error) {
	req := UpdateUserRoleRequest{Role: UserRole(d.Role)}
	if err := checkStruct(req); err != nil {
		return UpdateUserRoleRequest{}, err
	}
	return req, nil
}

func DraftFromUser(u User) UserRoleDraft {
	return UserRoleDraft{Role: string(u.Role)}
}
