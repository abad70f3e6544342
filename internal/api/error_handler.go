package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/distribuidora/analise-credito/internal/api/handler"
	"github.com/distribuidora/analise-credito/internal/core/domain"
)

// errorResponse is the canonical error envelope for errors that reach the
// central handler.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders echo errors (bind failures, unknown routes) with their own code.
//   - Maps classified domain errors through handler.StatusFor.
//   - Logs store failures and unexpected errors without leaking the cause.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)})
			return
		}

		if code, body, ok := handler.StatusFor(err); ok {
			_ = c.JSON(code, body)
			return
		}

		code, msg := resolveUnexpected(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveUnexpected(err error, log zerolog.Logger, c echo.Context) (int, string) {
	if errors.Is(err, domain.ErrBackend) {
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("backend failure")
		return http.StatusBadGateway, handler.BackendMessage(err)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
