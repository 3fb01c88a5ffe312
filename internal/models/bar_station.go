package models

import (
	"time"

	"github.com/google/uuid"
)

type BarStation struct {
	ID             int64          `json:"id" db:"id"`
	OrganizationID int64          `json:"organizationId" db:"organization_id"`
	Name           string         `json:"name" db:"name"`
	Description    *string        `json:"description" db:"description"`
	IsActive       bool           `json:"isActive" db:"is_active"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
	AssignedUsers  []*StationUser `json:"assignedUsers" db:"-"`
}

// StationUser is the reduced user shape embedded in bar station responses.
type StationUser struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Email string    `json:"email" db:"email"`
	Name  string    `json:"name" db:"name"`
}
