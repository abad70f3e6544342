package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RBAC lets a request through only when the role injected by Auth is one of
// allowedRoles. It must run after Auth: a request with no role at all is
// unauthenticated (401), a request with the wrong role is forbidden (403).
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	want := strings.Join(allowedRoles, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[role]; !ok {
				c.Logger().Debugf("rbac: role %q denied, route requires %s", role, want)
				return c.JSON(http.StatusForbidden, map[string]string{"error": "acesso negado"})
			}
			return next(c)
		}
	}
}
