package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/selim-ammari/user-management/internal/core/domain"
)

// RBAC enforces role-based access control on the role injected by Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": domain.MsgAdminRoleRequired})
			}
			return next(c)
		}
	}
}

// AdminGuard chains Auth and RBAC(admin) when enabled. When disabled it
// passes every request through.
func AdminGuard(enabled bool, jwtSecret string) []echo.MiddlewareFunc {
	if !enabled {
		return nil
	}
	return []echo.MiddlewareFunc{Auth(jwtSecret), RBAC(domain.RoleAdmin)}
}
