package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/distribuidora/analise-credito/internal/api/middleware"
	"github.com/distribuidora/analise-credito/internal/core/domain"
)

// ctxSession builds the caller's session from the claims injected by the Auth
// middleware. A missing subject or role means the middleware did not run.
func ctxSession(c echo.Context) (domain.Session, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	if userID == "" || role == "" {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if !domain.ValidRole(role) {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "token carries an unknown role")
	}

	name, _ := c.Get(middleware.CtxName).(string)
	email, _ := c.Get(middleware.CtxEmail).(string)
	return domain.Session{UserID: userID, Name: name, Email: email, Role: role}, nil
}
