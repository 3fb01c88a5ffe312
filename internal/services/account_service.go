package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"borsibaar/internal/caching"
	"borsibaar/internal/logging"
	"borsibaar/internal/models"
	"borsibaar/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type AccountService interface {
	// ResolveUser returns the user behind an authenticated email, creating
	// it with the USER role and no organization on first sight.
	ResolveUser(ctx context.Context, email, name string) (*models.User, error)
	GetCurrentAccount(ctx context.Context, user *models.User) *models.AccountView
	Onboard(ctx context.Context, user *models.User, req *OnboardingRequest) error
	ChangeOrganization(ctx context.Context, user *models.User, req *ChangeOrganizationRequest) error
}

type OnboardingRequest struct {
	OrganizationID *int64 `json:"organizationId"`
	AcceptTerms    *bool  `json:"acceptTerms"`
}

type ChangeOrganizationRequest struct {
	OrganizationID *int64 `json:"organizationId"`
}

type accountService struct {
	store repositories.Store
	roles *RoleRegistry
	cache caching.CacheService
	log   logging.Logger
}

func NewAccountService(store repositories.Store, roles *RoleRegistry, cache caching.CacheService, log logging.Logger) AccountService {
	return &accountService{
		store: store,
		roles: roles,
		cache: cache,
		log:   log.With("component", "account"),
	}
}

func (s *accountService) ResolveUser(ctx context.Context, email, name string) (*models.User, error) {
	// Emails are stored and cached lower-cased; the column is unique on LOWER(email).
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, invalid("email", "is required")
	}

	if cached, err := s.cache.GetUser(ctx, email); err != nil {
		s.log.Warn(ctx, "user cache read failed", "error", err)
	} else if cached != nil {
		return cached, nil
	}

	user, err := s.store.Users().GetByEmailWithRole(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		user, err = s.provision(ctx, email, name)
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetUser(ctx, user); err != nil {
		s.log.Warn(ctx, "user cache write failed", "error", err)
	}
	return user, nil
}

func (s *accountService) provision(ctx context.Context, email, name string) (*models.User, error) {
	role := s.roles.User()
	if strings.TrimSpace(name) == "" {
		name = email
	}
	user := &models.User{
		ID:     uuid.New(),
		Email:  email,
		Name:   name,
		RoleID: role.ID,
		Role:   &role,
	}

	if err := s.store.Users().Create(ctx, user); err != nil {
		// Another request provisioned the same email first.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return s.store.Users().GetByEmailWithRole(ctx, email)
		}
		return nil, err
	}

	s.log.Info(ctx, "user provisioned", "user_id", user.ID)
	return user, nil
}

func (s *accountService) GetCurrentAccount(_ context.Context, user *models.User) *models.AccountView {
	return models.NewAccountView(user)
}

func (s *accountService) Onboard(ctx context.Context, user *models.User, req *OnboardingRequest) error {
	if req == nil || req.AcceptTerms == nil || !*req.AcceptTerms {
		return invalid("acceptTerms", "terms must be accepted")
	}
	orgID, err := requireOrganizationID(req.OrganizationID)
	if err != nil {
		return err
	}

	if _, err := s.store.Organizations().GetByID(ctx, orgID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invalid("organizationId", "organization does not exist")
		}
		return err
	}

	// Onboarding never changes the role.
	if err := s.store.Users().UpdateOrganization(ctx, user.ID, orgID); err != nil {
		return err
	}

	user.OrganizationID = &orgID
	s.forget(ctx, user)
	s.log.Info(ctx, "user onboarded", "user_id", user.ID, "organization_id", orgID)
	return nil
}

// ChangeOrganization moves the user into another organization. The first
// member of an organization without an admin is promoted to ADMIN. The
// organization row stays locked from the admin check until the membership
// write commits, so concurrent joiners see each other's promotion.
func (s *accountService) ChangeOrganization(ctx context.Context, user *models.User, req *ChangeOrganizationRequest) error {
	if req == nil {
		return invalid("organizationId", "is required")
	}
	orgID, err := requireOrganizationID(req.OrganizationID)
	if err != nil {
		return err
	}

	admin := s.roles.Admin()
	var roleID int64
	promoted := false

	err = s.store.InTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.Organizations().GetByIDForUpdate(ctx, orgID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrOrganizationNotFound
			}
			return err
		}

		admins, err := tx.Users().CountByOrganizationAndRole(ctx, orgID, admin.ID)
		if err != nil {
			return err
		}
		// The stored role is kept unless promoting. The principal may be
		// a cached snapshot and must not overwrite it.
		var promoteTo *int64
		if admins == 0 {
			promoteTo = &admin.ID
		}

		roleID, err = tx.Users().UpdateMembership(ctx, user.ID, orgID, promoteTo)
		promoted = promoteTo != nil
		return err
	})
	if err != nil {
		return err
	}

	user.OrganizationID = &orgID
	user.RoleID = roleID
	if role, ok := s.roles.ByID(roleID); ok {
		user.Role = &role
	}
	s.forget(ctx, user)
	s.log.Info(ctx, "organization changed", "user_id", user.ID, "organization_id", orgID, "promoted_to_admin", promoted)
	return nil
}

func (s *accountService) forget(ctx context.Context, user *models.User) {
	if err := s.cache.DeleteUser(ctx, user.Email); err != nil {
		s.log.Warn(ctx, "user cache invalidation failed", "user_id", user.ID, "error", err)
	}
}

func requireOrganizationID(id *int64) (int64, error) {
	if id == nil {
		return 0, invalid("organizationId", "is required")
	}
	if *id <= 0 {
		return 0, invalid("organizationId", fmt.Sprintf("must be positive, got %d", *id))
	}
	return *id, nil
}
