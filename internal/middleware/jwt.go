package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"borsibaar/internal/common"
	"borsibaar/internal/logging"
	"borsibaar/internal/services"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const tokenContextKey = "token"

// JWTCustomClaims are the claims issued by the identity provider.
type JWTCustomClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// LoginEmail returns the email claim, falling back to an email-shaped subject.
func (c *JWTCustomClaims) LoginEmail() string {
	if email := strings.TrimSpace(c.Email); email != "" {
		return email
	}
	if strings.Contains(c.Subject, "@") {
		return strings.TrimSpace(c.Subject)
	}
	return ""
}

type JWTOptions struct {
	// Secret verifies HS256 tokens. Ignored when KeyFunc is set.
	Secret     []byte
	KeyFunc    jwt.Keyfunc
	CookieName string
}

// NewJWKSKeyFunc fetches the key set at url and keeps it refreshed in the
// background until ctx is done.
func NewJWKSKeyFunc(ctx context.Context, url string, log logging.Logger) (jwt.Keyfunc, error) {
	jwks, err := keyfunc.Get(url, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Warn(ctx, "jwks refresh failed", "url", url, "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}
	return jwks.Keyfunc, nil
}

// JWTMiddleware verifies the bearer token or the session cookie.
func JWTMiddleware(opts JWTOptions) echo.MiddlewareFunc {
	lookup := "header:Authorization:Bearer "
	if opts.CookieName != "" {
		lookup += ",cookie:" + opts.CookieName
	}

	cfg := echojwt.Config{
		ContextKey:  tokenContextKey,
		TokenLookup: lookup,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(JWTCustomClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return common.SendUnauthorizedError(c)
		},
	}
	if opts.KeyFunc != nil {
		cfg.KeyFunc = opts.KeyFunc
	} else {
		cfg.SigningKey = opts.Secret
	}
	return echojwt.WithConfig(cfg)
}

// ClaimsFromContext returns the claims of the verified token.
func ClaimsFromContext(c echo.Context) (*JWTCustomClaims, bool) {
	token, ok := c.Get(tokenContextKey).(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*JWTCustomClaims)
	return claims, ok
}

// PrincipalMiddleware resolves the verified token to a user. It must run
// after JWTMiddleware.
func PrincipalMiddleware(accounts services.AccountService, log logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return common.SendUnauthorizedError(c)
			}
			email := claims.LoginEmail()
			if email == "" {
				return common.SendUnauthorizedError(c)
			}

			user, err := accounts.ResolveUser(ctx, email, claims.Name)
			if err != nil {
				if errors.Is(err, services.ErrValidation) {
					return common.SendUnauthorizedError(c)
				}
				log.Error(ctx, "resolve principal failed", "error", err)
				return common.SendServerError(c, "Failed to resolve user")
			}

			common.SetPrincipal(c, user)
			return next(c)
		}
	}
}
