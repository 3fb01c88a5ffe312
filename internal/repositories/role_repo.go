package repositories

import (
	"context"
	"fmt"

	"borsibaar/internal/models"
)

type RoleRepository interface {
	GetByName(ctx context.Context, name models.RoleName) (*models.Role, error)
}

type roleRepo struct {
	db DBTX
}

func NewRoleRepo(db DBTX) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) GetByName(ctx context.Context, name models.RoleName) (*models.Role, error) {
	role := &models.Role{}
	var roleName string
	query := `SELECT id, name FROM roles WHERE name = $1`
	if err := r.db.QueryRow(ctx, query, string(name)).Scan(&role.ID, &roleName); err != nil {
		return nil, fmt.Errorf("get role %s: %w", name, err)
	}
	role.Name = models.RoleName(roleName)
	return role, nil
}
