package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/distribuidora/analise-credito/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
// Missing lists unsatisfied checklist items when a gated submission is refused.
type errorResponse struct {
	Error   string                 `json:"error"`
	Missing []domain.ChecklistItem `json:"missing,omitempty"`
}

// StatusFor maps a classified domain error to its HTTP status and envelope.
// Backend and unclassified errors report ok=false so the central error
// handler can log them.
func StatusFor(err error) (code int, body errorResponse, ok bool) {
	var incomplete *domain.IncompleteChecklistError
	if errors.As(err, &incomplete) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "checklist de documentos incompleto",
			Missing: incomplete.Missing,
		}, true
	}

	msg := err.Error()
	var de *domain.Error
	if errors.As(err, &de) {
		msg = de.Msg
	}

	switch {
	case errors.Is(err, domain.ErrBackend):
		return 0, errorResponse{}, false
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: msg}, true
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: msg}, true
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, errorResponse{Error: msg}, true
	case errors.Is(err, domain.ErrAuthorization):
		return http.StatusForbidden, errorResponse{Error: msg}, true
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: msg}, true
	}
	return 0, errorResponse{}, false
}

// BackendMessage returns the user-facing part of a backend error.
func BackendMessage(err error) string {
	var de *domain.Error
	if errors.As(err, &de) && de.Kind == domain.ErrBackend {
		return de.Msg
	}
	return "internal server error"
}

// fail renders classified errors and hands the rest to the error handler.
func fail(c echo.Context, err error) error {
	if code, body, ok := StatusFor(err); ok {
		return c.JSON(code, body)
	}
	return err
}

func badPayload() error {
	return echo.NewHTTPError(http.StatusBadRequest, "payload inválido")
}
