package services

import (
	"context"
	"errors"
	"strings"

	"borsibaar/internal/logging"
	"borsibaar/internal/models"
	"borsibaar/internal/repositories"

	"github.com/jackc/pgx/v5"
)

type CategoryService interface {
	List(ctx context.Context, user *models.User) ([]*models.Category, error)
	Get(ctx context.Context, user *models.User, id int64) (*models.Category, error)
	Create(ctx context.Context, user *models.User, req *CreateCategoryRequest) (*models.Category, error)
}

type CreateCategoryRequest struct {
	Name           string `json:"name"`
	DynamicPricing bool   `json:"dynamicPricing"`
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	log          logging.Logger
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, log logging.Logger) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, log: log.With("component", "categories")}
}

func (s *categoryService) List(ctx context.Context, user *models.User) ([]*models.Category, error) {
	orgID, err := organizationOf(user)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByOrganization(ctx, orgID)
}

func (s *categoryService) Get(ctx context.Context, user *models.User, id int64) (*models.Category, error) {
	orgID, err := organizationOf(user)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.GetByIDAndOrganization(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, user *models.User, req *CreateCategoryRequest) (*models.Category, error) {
	orgID, err := organizationOf(user)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, ErrForbidden
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if len(name) > 100 {
		return nil, invalid("name", "cannot exceed 100 characters")
	}

	exists, err := s.categoryRepo.ExistsByOrganizationAndName(ctx, orgID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryExists
	}

	category := &models.Category{
		OrganizationID: orgID,
		Name:           name,
		DynamicPricing: req.DynamicPricing,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "category created", "organization_id", orgID, "category_id", category.ID)
	return category, nil
}
