package models

// RoleName is the closed set of role names seeded by the initial migration.
type RoleName string

const (
	RoleAdmin RoleName = "ADMIN"
	RoleUser  RoleName = "USER"
)

// KnownRoles lists every role the service expects to find in the roles table.
var KnownRoles = []RoleName{RoleAdmin, RoleUser}

type Role struct {
	ID   int64    `json:"id" db:"id"`
	Name RoleName `json:"name" db:"name"`
}
