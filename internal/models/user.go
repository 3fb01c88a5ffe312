package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	Name           string    `json:"name" db:"name"`
	OrganizationID *int64    `json:"organizationId,omitempty" db:"organization_id"`
	RoleID         int64     `json:"-" db:"role_id"`
	Role           *Role     `json:"role,omitempty" db:"-"` // joined on lookup
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// HasOrganization reports whether the user finished onboarding.
func (u *User) HasOrganization() bool {
	return u.OrganizationID != nil
}

// RoleName returns the joined role name, or an empty string when the role
// was not loaded.
func (u *User) RoleName() RoleName {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

func (u *User) IsAdmin() bool {
	return u.RoleName() == RoleAdmin
}
