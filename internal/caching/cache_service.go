package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"borsibaar/internal/logging"
	"borsibaar/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "borsibaar"

type CacheService interface {
	// Principal caching, keyed by login email
	GetUser(ctx context.Context, email string) (*models.User, error)
	SetUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, email string) error

	// Organization list used by the switcher
	GetOrganizations(ctx context.Context) ([]*models.Organization, error)
	SetOrganizations(ctx context.Context, orgs []*models.Organization) error
	InvalidateOrganizations(ctx context.Context) error

	Ping(ctx context.Context) error
}

type Options struct {
	Addr     string
	Password string
	DB       int
	UserTTL  time.Duration
	OrgTTL   time.Duration
}

type redisCacheService struct {
	client  *redis.Client
	userTTL time.Duration
	orgTTL  time.Duration
}

// NewRedisCacheService connects lazily; a failed initial ping is logged, not
// returned, so the API keeps serving from Postgres while Redis is down.
func NewRedisCacheService(opts Options, log logging.Logger) CacheService {
	addr := opts.Addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		addr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn(context.Background(), "redis ping failed on startup", "addr", addr, "error", err)
	} else {
		log.Info(context.Background(), "redis connected", "addr", addr)
	}

	return NewRedisCacheServiceFromClient(client, opts.UserTTL, opts.OrgTTL)
}

func NewRedisCacheServiceFromClient(client *redis.Client, userTTL, orgTTL time.Duration) CacheService {
	return &redisCacheService{client: client, userTTL: userTTL, orgTTL: orgTTL}
}

// cachedUser keeps RoleID, which models.User hides from JSON.
type cachedUser struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	OrganizationID *int64    `json:"organization_id,omitempty"`
	RoleID         int64     `json:"role_id"`
	RoleName       string    `json:"role_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func encodeUser(u *models.User) ([]byte, error) {
	return json.Marshal(cachedUser{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		OrganizationID: u.OrganizationID,
		RoleID:         u.RoleID,
		RoleName:       string(u.RoleName()),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	})
}

func decodeUser(data []byte) (*models.User, error) {
	var c cachedUser
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &models.User{
		ID:             c.ID,
		Email:          c.Email,
		Name:           c.Name,
		OrganizationID: c.OrganizationID,
		RoleID:         c.RoleID,
		Role:           &models.Role{ID: c.RoleID, Name: models.RoleName(c.RoleName)},
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}, nil
}

func userKey(email string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, strings.ToLower(email))
}

func organizationsKey() string {
	return keyPrefix + ":organizations"
}

func (r *redisCacheService) GetUser(ctx context.Context, email string) (*models.User, error) {
	data, err := r.client.Get(ctx, userKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, err
	}
	return decodeUser(data)
}

func (r *redisCacheService) SetUser(ctx context.Context, user *models.User) error {
	data, err := encodeUser(user)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, userKey(user.Email), data, r.userTTL).Err()
}

func (r *redisCacheService) DeleteUser(ctx context.Context, email string) error {
	return r.client.Del(ctx, userKey(email)).Err()
}

func (r *redisCacheService) GetOrganizations(ctx context.Context) ([]*models.Organization, error) {
	data, err := r.client.Get(ctx, organizationsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var orgs []*models.Organization
	if err := json.Unmarshal(data, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *redisCacheService) SetOrganizations(ctx context.Context, orgs []*models.Organization) error {
	data, err := json.Marshal(orgs)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, organizationsKey(), data, r.orgTTL).Err()
}

func (r *redisCacheService) InvalidateOrganizations(ctx context.Context) error {
	return r.client.Del(ctx, organizationsKey()).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
