package services

import (
	"context"
	"errors"
	"fmt"

	"borsibaar/internal/models"
	"borsibaar/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// RoleRegistry holds the seeded roles resolved once at startup.
type RoleRegistry struct {
	roles map[models.RoleName]models.Role
}

// LoadRoleRegistry resolves every known role by name. A missing role is a
// deployment defect and fails with ErrMissingSeedRole.
func LoadRoleRegistry(ctx context.Context, repo repositories.RoleRepository) (*RoleRegistry, error) {
	reg := &RoleRegistry{roles: make(map[models.RoleName]models.Role, len(models.KnownRoles))}
	for _, name := range models.KnownRoles {
		role, err := repo.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s", ErrMissingSeedRole, name)
			}
			return nil, fmt.Errorf("load role %s: %w", name, err)
		}
		reg.roles[name] = *role
	}
	return reg, nil
}

// NewRoleRegistry builds a registry from already known roles.
func NewRoleRegistry(roles ...models.Role) *RoleRegistry {
	reg := &RoleRegistry{roles: make(map[models.RoleName]models.Role, len(roles))}
	for _, r := range roles {
		reg.roles[r.Name] = r
	}
	return reg
}

func (r *RoleRegistry) Get(name models.RoleName) (models.Role, bool) {
	role, ok := r.roles[name]
	return role, ok
}

func (r *RoleRegistry) Admin() models.Role {
	return r.roles[models.RoleAdmin]
}

func (r *RoleRegistry) User() models.Role {
	return r.roles[models.RoleUser]
}

// ByID finds a registered role by its database id.
func (r *RoleRegistry) ByID(id int64) (models.Role, bool) {
	for _, role := range r.roles {
		if role.ID == id {
			return role, true
		}
	}
	return models.Role{}, false
}
