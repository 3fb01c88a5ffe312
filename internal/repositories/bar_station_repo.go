package repositories

import (
	"context"
	"fmt"

	"borsibaar/internal/models"

	"github.com/google/uuid"
)

type BarStationRepository interface {
	ListByOrganization(ctx context.Context, organizationID int64) ([]*models.BarStation, error)
	ListActiveByOrganization(ctx context.Context, organizationID int64) ([]*models.BarStation, error)
	GetByOrganizationAndID(ctx context.Context, organizationID, id int64) (*models.BarStation, error)
}

type barStationRepo struct {
	db DBTX
}

func NewBarStationRepo(db DBTX) BarStationRepository {
	return &barStationRepo{db: db}
}

const barStationSelect = `
		SELECT id, organization_id, name, description, is_active, created_at, updated_at
		FROM bar_stations
`

func scanBarStation(row rowScanner) (*models.BarStation, error) {
	s := &models.BarStation{}
	if err := row.Scan(&s.ID, &s.OrganizationID, &s.Name, &s.Description, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.AssignedUsers = []*models.StationUser{}
	return s, nil
}

func (r *barStationRepo) ListByOrganization(ctx context.Context, organizationID int64) ([]*models.BarStation, error) {
	return r.list(ctx, barStationSelect+`		WHERE organization_id = $1 ORDER BY name ASC`, organizationID)
}

func (r *barStationRepo) ListActiveByOrganization(ctx context.Context, organizationID int64) ([]*models.BarStation, error) {
	return r.list(ctx, barStationSelect+`		WHERE organization_id = $1 AND is_active = TRUE ORDER BY name ASC`, organizationID)
}

func (r *barStationRepo) GetByOrganizationAndID(ctx context.Context, organizationID, id int64) (*models.BarStation, error) {
	station, err := scanBarStation(r.db.QueryRow(ctx, barStationSelect+`		WHERE organization_id = $1 AND id = $2`, organizationID, id))
	if err != nil {
		return nil, fmt.Errorf("get bar station %d: %w", id, err)
	}
	if err := r.attachUsers(ctx, []*models.BarStation{station}); err != nil {
		return nil, err
	}
	return station, nil
}

func (r *barStationRepo) list(ctx context.Context, query string, organizationID int64) ([]*models.BarStation, error) {
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := []*models.BarStation{}
	for rows.Next() {
		station, err := scanBarStation(rows)
		if err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachUsers(ctx, stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// attachUsers fills AssignedUsers for all stations with a single query.
func (r *barStationRepo) attachUsers(ctx context.Context, stations []*models.BarStation) error {
	if len(stations) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(stations))
	byID := make(map[int64]*models.BarStation, len(stations))
	for _, s := range stations {
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}

	query := `
		SELECT bsu.bar_station_id, u.id, u.email, u.name
		FROM bar_station_users bsu
		JOIN users u ON u.id = bsu.user_id
		WHERE bsu.bar_station_id = ANY($1)
		ORDER BY u.name ASC
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load bar station users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var stationID int64
		var userID uuid.UUID
		u := &models.StationUser{}
		if err := rows.Scan(&stationID, &userID, &u.Email, &u.Name); err != nil {
			return err
		}
		u.ID = userID
		if s, ok := byID[stationID]; ok {
			s.AssignedUsers = append(s.AssignedUsers, u)
		}
	}
	return rows.Err()
}
