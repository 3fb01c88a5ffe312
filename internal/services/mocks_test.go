package services

import (
	"context"

	"borsibaar/internal/models"
	"borsibaar/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
	users         *MockUserRepository
	roles         *MockRoleRepository
	organizations *MockOrganizationRepository
	barStations   *MockBarStationRepository
	categories    *MockCategoryRepository
}

func NewMockStore() *MockStore {
	return &MockStore{
		users:         &MockUserRepository{},
		roles:         &MockRoleRepository{},
		organizations: &MockOrganizationRepository{},
		barStations:   &MockBarStationRepository{},
		categories:    &MockCategoryRepository{},
	}
}

func (m *MockStore) Users() repositories.UserRepository                 { return m.users }
func (m *MockStore) Roles() repositories.RoleRepository                 { return m.roles }
func (m *MockStore) Organizations() repositories.OrganizationRepository { return m.organizations }
func (m *MockStore) BarStations() repositories.BarStationRepository     { return m.barStations }
func (m *MockStore) Categories() repositories.CategoryRepository        { return m.categories }

// InTx records the call and runs fn against the same mocks; the recorded
// error, when set, simulates a failed BEGIN.
func (m *MockStore) InTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmailWithRole(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateOrganization(ctx context.Context, userID uuid.UUID, organizationID int64) error {
	args := m.Called(ctx, userID, organizationID)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateMembership(ctx context.Context, userID uuid.UUID, organizationID int64, promoteTo *int64) (int64, error) {
	args := m.Called(ctx, userID, organizationID, promoteTo)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountByOrganizationAndRole(ctx context.Context, organizationID, roleID int64) (int, error) {
	args := m.Called(ctx, organizationID, roleID)
	return args.Int(0), args.Error(1)
}

type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) GetByName(ctx context.Context, name models.RoleName) (*models.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) List(ctx context.Context) ([]*models.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ListWithoutRole(ctx context.Context, roleID int64) ([]*models.Organization, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Organization), args.Error(1)
}

type MockBarStationRepository struct {
	mock.Mock
}

func (m *MockBarStationRepository) ListByOrganization(ctx context.Context, organizationID int64) ([]*models.BarStation, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).([]*models.BarStation), args.Error(1)
}

func (m *MockBarStationRepository) ListActiveByOrganization(ctx context.Context, organizationID int64) ([]*models.BarStation, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).([]*models.BarStation), args.Error(1)
}

func (m *MockBarStationRepository) GetByOrganizationAndID(ctx context.Context, organizationID, id int64) (*models.BarStation, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BarStation), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByIDAndOrganization(ctx context.Context, id, organizationID int64) (*models.Category, error) {
	args := m.Called(ctx, id, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListByOrganization(ctx context.Context, organizationID int64) ([]*models.Category, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByOrganizationAndName(ctx context.Context, organizationID int64, name string) (bool, error) {
	args := m.Called(ctx, organizationID, name)
	return args.Bool(0), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetUser(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockCacheService) SetUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockCacheService) DeleteUser(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockCacheService) GetOrganizations(ctx context.Context) ([]*models.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Organization), args.Error(1)
}

func (m *MockCacheService) SetOrganizations(ctx context.Context, orgs []*models.Organization) error {
	args := m.Called(ctx, orgs)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateOrganizations(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var (
	testAdminRole = models.Role{ID: 1, Name: models.RoleAdmin}
	testUserRole  = models.Role{ID: 2, Name: models.RoleUser}
)

func testRegistry() *RoleRegistry {
	return NewRoleRegistry(testAdminRole, testUserRole)
}

// userWithOrgAndRole builds a member of orgID (nil for none) holding role.
func userWithOrgAndRole(orgID *int64, role models.Role) *models.User {
	r := role
	return &models.User{
		ID:             uuid.New(),
		Email:          "user@test.com",
		Name:           "Test User",
		OrganizationID: orgID,
		RoleID:         role.ID,
		Role:           &r,
	}
}

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }
