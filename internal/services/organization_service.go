package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"borsibaar/internal/caching"
	"borsibaar/internal/logging"
	"borsibaar/internal/models"
	"borsibaar/internal/repositories"

	"github.com/jackc/pgx/v5"
)

var priceStepPattern = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)

type OrganizationService interface {
	List(ctx context.Context) ([]*models.Organization, error)
	GetByID(ctx context.Context, id int64) (*models.Organization, error)
	Create(ctx context.Context, req *CreateOrganizationRequest) (*models.Organization, error)
	// WithoutAdmin lists organizations that have members but no ADMIN.
	WithoutAdmin(ctx context.Context) ([]*models.Organization, error)
}

type CreateOrganizationRequest struct {
	Name              string  `json:"name"`
	PriceIncreaseStep *string `json:"priceIncreaseStep"`
	PriceDecreaseStep *string `json:"priceDecreaseStep"`
}

type organizationService struct {
	orgRepo repositories.OrganizationRepository
	roles   *RoleRegistry
	cache   caching.CacheService
	log     logging.Logger
}

func NewOrganizationService(orgRepo repositories.OrganizationRepository, roles *RoleRegistry, cache caching.CacheService, log logging.Logger) OrganizationService {
	return &organizationService{
		orgRepo: orgRepo,
		roles:   roles,
		cache:   cache,
		log:     log.With("component", "organizations"),
	}
}

func (s *organizationService) List(ctx context.Context) ([]*models.Organization, error) {
	if orgs, err := s.cache.GetOrganizations(ctx); err != nil {
		s.log.Warn(ctx, "organization cache read failed", "error", err)
	} else if orgs != nil {
		return orgs, nil
	}

	orgs, err := s.orgRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetOrganizations(ctx, orgs); err != nil {
		s.log.Warn(ctx, "organization cache write failed", "error", err)
	}
	return orgs, nil
}

func (s *organizationService) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	if id <= 0 {
		return nil, invalid("id", "must be positive")
	}
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return org, nil
}

func (s *organizationService) Create(ctx context.Context, req *CreateOrganizationRequest) (*models.Organization, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if len(name) > 255 {
		return nil, invalid("name", "cannot exceed 255 characters")
	}
	if err := validatePriceStep("priceIncreaseStep", req.PriceIncreaseStep); err != nil {
		return nil, err
	}
	if err := validatePriceStep("priceDecreaseStep", req.PriceDecreaseStep); err != nil {
		return nil, err
	}

	org := &models.Organization{
		Name:              name,
		PriceIncreaseStep: req.PriceIncreaseStep,
		PriceDecreaseStep: req.PriceDecreaseStep,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateOrganizations(ctx); err != nil {
		s.log.Warn(ctx, "organization cache invalidation failed", "error", err)
	}
	s.log.Info(ctx, "organization created", "organization_id", org.ID)
	return org, nil
}

func (s *organizationService) WithoutAdmin(ctx context.Context) ([]*models.Organization, error) {
	return s.orgRepo.ListWithoutRole(ctx, s.roles.Admin().ID)
}

func validatePriceStep(field string, step *string) error {
	if step == nil {
		return nil
	}
	*step = strings.TrimSpace(*step)
	if !priceStepPattern.MatchString(*step) {
		return invalid(field, "must be a non-negative decimal with at most two fraction digits")
	}
	return nil
}
