package repositories

import (
	"context"
	"fmt"

	"borsibaar/internal/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByIDAndOrganization(ctx context.Context, id, organizationID int64) (*models.Category, error)
	ListByOrganization(ctx context.Context, organizationID int64) ([]*models.Category, error)
	ExistsByOrganizationAndName(ctx context.Context, organizationID int64, name string) (bool, error)
}

type categoryRepo struct {
	db DBTX
}

func NewCategoryRepo(db DBTX) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (organization_id, name, dynamic_pricing, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, category.OrganizationID, category.Name, category.DynamicPricing).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *categoryRepo) GetByIDAndOrganization(ctx context.Context, id, organizationID int64) (*models.Category, error) {
	category := &models.Category{}
	query := `
		SELECT id, organization_id, name, dynamic_pricing, created_at, updated_at
		FROM categories
		WHERE id = $1 AND organization_id = $2
	`
	err := r.db.QueryRow(ctx, query, id, organizationID).Scan(&category.ID, &category.OrganizationID, &category.Name,
		&category.DynamicPricing, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return category, nil
}

func (r *categoryRepo) ListByOrganization(ctx context.Context, organizationID int64) ([]*models.Category, error) {
	query := `
		SELECT id, organization_id, name, dynamic_pricing, created_at, updated_at
		FROM categories
		WHERE organization_id = $1
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.OrganizationID, &category.Name,
			&category.DynamicPricing, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// ExistsByOrganizationAndName compares names case-insensitively.
func (r *categoryRepo) ExistsByOrganizationAndName(ctx context.Context, organizationID int64, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE organization_id = $1 AND LOWER(name) = LOWER($2))`
	var exists bool
	if err := r.db.QueryRow(ctx, query, organizationID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return exists, nil
}
