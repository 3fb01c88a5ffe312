package repositories

import (
	"context"
	"fmt"

	"borsibaar/internal/models"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id int64) (*models.Organization, error)
	// GetByIDForUpdate locks the organization row until the surrounding
	// transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Organization, error)
	List(ctx context.Context) ([]*models.Organization, error)
	ListWithoutRole(ctx context.Context, roleID int64) ([]*models.Organization, error)
}

type organizationRepo struct {
	db DBTX
}

func NewOrganizationRepo(db DBTX) OrganizationRepository {
	return &organizationRepo{db: db}
}

const organizationColumns = `o.id, o.name, o.created_at, o.updated_at, o.price_increase_step::text, o.price_decrease_step::text`

func scanOrganization(row rowScanner) (*models.Organization, error) {
	org := &models.Organization{}
	err := row.Scan(&org.ID, &org.Name, &org.CreatedAt, &org.UpdatedAt, &org.PriceIncreaseStep, &org.PriceDecreaseStep)
	if err != nil {
		return nil, err
	}
	return org, nil
}

func (r *organizationRepo) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (name, price_increase_step, price_decrease_step, created_at, updated_at)
		VALUES ($1, $2::numeric, $3::numeric, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, org.Name, org.PriceIncreaseStep, org.PriceDecreaseStep).
		Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

func (r *organizationRepo) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations o WHERE o.id = $1`
	org, err := scanOrganization(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get organization %d: %w", id, err)
	}
	return org, nil
}

func (r *organizationRepo) GetByIDForUpdate(ctx context.Context, id int64) (*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations o WHERE o.id = $1 FOR UPDATE`
	org, err := scanOrganization(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("lock organization %d: %w", id, err)
	}
	return org, nil
}

func (r *organizationRepo) List(ctx context.Context) ([]*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations o ORDER BY o.name ASC, o.id ASC`
	return r.list(ctx, query)
}

// ListWithoutRole returns organizations that have members but none of them
// holds the given role.
func (r *organizationRepo) ListWithoutRole(ctx context.Context, roleID int64) ([]*models.Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM organizations o
		WHERE EXISTS (SELECT 1 FROM users u WHERE u.organization_id = o.id)
		  AND NOT EXISTS (SELECT 1 FROM users u WHERE u.organization_id = o.id AND u.role_id = $1)
		ORDER BY o.id
	`
	return r.list(ctx, query, roleID)
}

func (r *organizationRepo) list(ctx context.Context, query string, args ...any) ([]*models.Organization, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := []*models.Organization{}
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}
