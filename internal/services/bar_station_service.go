package services

import (
	"context"
	"errors"

	"borsibaar/internal/models"
	"borsibaar/internal/repositories"

	"github.com/jackc/pgx/v5"
)

type BarStationService interface {
	List(ctx context.Context, user *models.User) ([]*models.BarStation, error)
	ListActive(ctx context.Context, user *models.User) ([]*models.BarStation, error)
	Get(ctx context.Context, user *models.User, id int64) (*models.BarStation, error)
}

type barStationService struct {
	stationRepo repositories.BarStationRepository
}

func NewBarStationService(stationRepo repositories.BarStationRepository) BarStationService {
	return &barStationService{stationRepo: stationRepo}
}

func (s *barStationService) List(ctx context.Context, user *models.User) ([]*models.BarStation, error) {
	orgID, err := organizationOf(user)
	if err != nil {
		return nil, err
	}
	return s.stationRepo.ListByOrganization(ctx, orgID)
}

func (s *barStationService) ListActive(ctx context.Context, user *models.User) ([]*models.BarStation, error) {
	orgID, err := organizationOf(user)
	if err != nil {
		return nil, err
	}
	return s.stationRepo.ListActiveByOrganization(ctx, orgID)
}

func (s *barStationService) Get(ctx context.Context, user *models.User, id int64) (*models.BarStation, error) {
	orgID, err := organizationOf(user)
	if err != nil {
		return nil, err
	}
	station, err := s.stationRepo.GetByOrganizationAndID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return station, nil
}

// organizationOf returns the caller's organization or ErrOnboardingRequired.
func organizationOf(user *models.User) (int64, error) {
	if user == nil || !user.HasOrganization() {
		return 0, ErrOnboardingRequired
	}
	return *user.OrganizationID, nil
}
