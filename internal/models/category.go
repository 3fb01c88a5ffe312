package models

import "time"

type Category struct {
	ID             int64     `json:"id" db:"id"`
	OrganizationID int64     `json:"organizationId" db:"organization_id"`
	Name           string    `json:"name" db:"name"`
	DynamicPricing bool      `json:"dynamicPricing" db:"dynamic_pricing"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}
