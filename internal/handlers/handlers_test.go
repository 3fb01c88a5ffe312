package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"borsibaar/internal/common"
	"borsibaar/internal/models"
	"borsibaar/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ResolveUser(ctx context.Context, email, name string) (*models.User, error) {
	args := m.Called(ctx, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccountService) GetCurrentAccount(ctx context.Context, user *models.User) *models.AccountView {
	return models.NewAccountView(user)
}

func (m *MockAccountService) Onboard(ctx context.Context, user *models.User, req *services.OnboardingRequest) error {
	return m.Called(ctx, user, req).Error(0)
}

func (m *MockAccountService) ChangeOrganization(ctx context.Context, user *models.User, req *services.ChangeOrganizationRequest) error {
	return m.Called(ctx, user, req).Error(0)
}

type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) List(ctx context.Context) ([]*models.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Organization), args.Error(1)
}

func (m *MockOrganizationService) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationService) Create(ctx context.Context, req *services.CreateOrganizationRequest) (*models.Organization, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationService) WithoutAdmin(ctx context.Context) ([]*models.Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Organization), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, user *models.User) ([]*models.Category, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, user *models.User, id int64) (*models.Category, error) {
	args := m.Called(ctx, user, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, user *models.User, req *services.CreateCategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

type MockBarStationService struct {
	mock.Mock
}

func (m *MockBarStationService) List(ctx context.Context, user *models.User) ([]*models.BarStation, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BarStation), args.Error(1)
}

func (m *MockBarStationService) ListActive(ctx context.Context, user *models.User) ([]*models.BarStation, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BarStation), args.Error(1)
}

func (m *MockBarStationService) Get(ctx context.Context, user *models.User, id int64) (*models.BarStation, error) {
	args := m.Called(ctx, user, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BarStation), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetUser(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}
func (m *MockCacheService) SetUser(ctx context.Context, user *models.User) error { return nil }
func (m *MockCacheService) DeleteUser(ctx context.Context, email string) error   { return nil }
func (m *MockCacheService) GetOrganizations(ctx context.Context) ([]*models.Organization, error) {
	return nil, nil
}
func (m *MockCacheService) SetOrganizations(ctx context.Context, orgs []*models.Organization) error {
	return nil
}
func (m *MockCacheService) InvalidateOrganizations(ctx context.Context) error { return nil }
func (m *MockCacheService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func testUser(orgID *int64, role models.RoleName) *models.User {
	id := int64(1)
	if role == models.RoleUser {
		id = 2
	}
	return &models.User{
		ID:             uuid.New(),
		Email:          "user@test.com",
		Name:           "Test User",
		OrganizationID: orgID,
		RoleID:         id,
		Role:           &models.Role{ID: id, Name: role},
	}
}

func int64Ptr(v int64) *int64 { return &v }

// serve runs one request through a route that sees user as the principal.
// A nil user simulates an unauthenticated request.
func serve(method, route, target, body string, user *models.User, h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	withPrincipal := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user != nil {
				common.SetPrincipal(c, user)
			}
			return next(c)
		}
	}
	e.Add(method, route, h, withPrincipal)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

var errBoom = errors.New("boom")
