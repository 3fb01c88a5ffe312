package repositories

import (
	"context"
	"fmt"

	"borsibaar/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmailWithRole(ctx context.Context, email string) (*models.User, error)
	UpdateOrganization(ctx context.Context, userID uuid.UUID, organizationID int64) error
	UpdateMembership(ctx context.Context, userID uuid.UUID, organizationID int64, promoteTo *int64) (int64, error)
	CountByOrganizationAndRole(ctx context.Context, organizationID, roleID int64) (int, error)
}

type userRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) UserRepository {
	return &userRepo{db: db}
}

const userSelect = `
		SELECT u.id, u.email, u.name, u.organization_id, u.role_id, r.name, u.created_at, u.updated_at
		FROM users u
		JOIN roles r ON r.id = u.role_id
`

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var roleName string
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.OrganizationID, &user.RoleID, &roleName, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	user.Role = &models.Role{ID: user.RoleID, Name: models.RoleName(roleName)}
	return user, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, name, organization_id, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, user.ID, user.Email, user.Name, user.OrganizationID, user.RoleID).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user %s: %w", user.Email, err)
	}
	return nil
}

// GetByEmailWithRole loads a user by login email with the role joined.
// Emails compare case-insensitively, matching uq_users_email_lower.
func (r *userRepo) GetByEmailWithRole(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, userSelect+`		WHERE LOWER(u.email) = LOWER($1)`, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// UpdateOrganization moves the user into organizationID. The role is left as stored.
func (r *userRepo) UpdateOrganization(ctx context.Context, userID uuid.UUID, organizationID int64) error {
	query := `
		UPDATE users
		SET organization_id = $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := r.db.Exec(ctx, query, organizationID, userID)
	if err != nil {
		return fmt.Errorf("update organization of user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update organization of user %s: %w", userID, pgx.ErrNoRows)
	}
	return nil
}

// UpdateMembership writes the organization, and the role when promoteTo is
// set, in one statement. A nil promoteTo keeps the stored role. The role the
// row ends up with is returned.
func (r *userRepo) UpdateMembership(ctx context.Context, userID uuid.UUID, organizationID int64, promoteTo *int64) (int64, error) {
	query := `
		UPDATE users
		SET organization_id = $1, role_id = COALESCE($2, role_id), updated_at = NOW()
		WHERE id = $3
		RETURNING role_id
	`
	var roleID int64
	if err := r.db.QueryRow(ctx, query, organizationID, promoteTo, userID).Scan(&roleID); err != nil {
		return 0, fmt.Errorf("update membership of user %s: %w", userID, err)
	}
	return roleID, nil
}

func (r *userRepo) CountByOrganizationAndRole(ctx context.Context, organizationID, roleID int64) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE organization_id = $1 AND role_id = $2`
	var count int
	if err := r.db.QueryRow(ctx, query, organizationID, roleID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users of organization %d: %w", organizationID, err)
	}
	return count, nil
}
