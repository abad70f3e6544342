package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/distribuidora/analise-credito/internal/core/domain"
	"github.com/distribuidora/analise-credito/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"nome"         validate:"required"`
	Email    string `json:"email"        validate:"required,email"`
	Password string `json:"password"     validate:"required,min=6,max=72"`
	Role     string `json:"tipo_usuario" validate:"omitempty,oneof=admin vendedor"`
}

type changePasswordRequest struct {
	Current string `json:"senha_atual" validate:"required"`
	Next    string `json:"nova_senha"  validate:"required,min=6,max=72"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type sessionResponse struct {
	UserID string `json:"id"`
	Name   string `json:"nome"`
	Email  string `json:"email"`
	Role   string `json:"tipo_usuario"`
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, err)
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Me returns the session carried by the bearer token.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{UserID: s.UserID, Name: s.Name, Email: s.Email, Role: s.Role})
}

// ChangePassword replaces the caller's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Router       /v1/me/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, err)
	}

	if err := h.authService.ChangePassword(c.Request().Context(), s, req.Current, req.Next); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Register creates a new user account. Administrators only.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *AuthHandler) Register(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, err)
	}

	user, err := h.authService.Register(c.Request().Context(), s, ports.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// ListUsers returns every user. Administrators only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	users, err := h.authService.ListUsers(c.Request().Context(), s)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}
