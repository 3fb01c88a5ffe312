package middleware

import (
	"borsibaar/internal/common"
	"borsibaar/internal/models"

	"github.com/labstack/echo/v4"
)

// RequireRole rejects principals that do not hold one of roles.
func RequireRole(roles ...models.RoleName) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := common.GetPrincipal(c)
			if !ok {
				return common.SendUnauthorizedError(c)
			}
			for _, role := range roles {
				if user.RoleName() == role {
					return next(c)
				}
			}
			return common.SendForbiddenError(c, "FORBIDDEN", "Insufficient permissions")
		}
	}
}
