package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/distribuidora/analise-credito/internal/core/domain"
	"github.com/distribuidora/analise-credito/internal/core/ports"
)

const (
	minPasswordLength = 6
	// bcrypt refuses longer inputs.
	maxPasswordBytes = 72
)

// AuthService implements login, user management and password changes.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates a user. Only administrators may create accounts.
func (s *AuthService) Register(ctx context.Context, actor domain.Session, in ports.RegisterUserInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.Forbiddenf("apenas administradores podem criar usuários")
	}
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || strings.TrimSpace(in.Password) == "" {
		return nil, domain.Validationf("nome, email e senha são obrigatórios")
	}
	if err := checkPasswordLength(in.Password, "a senha"); err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = domain.RoleAgent
	}
	if !domain.ValidRole(role) {
		return nil, domain.Validationf("tipo de usuário inválido: %q", in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, domain.Backend("falha ao criar usuário", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", role).Str("actor", actor.UserID).Msg("user created")
	return created, nil
}

// EnsureAdmin creates an administrator with the given credentials unless an
// account with that email already exists. It reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, domain.Backend("falha ao buscar usuário", err)
	}

	system := domain.Session{UserID: "bootstrap", Role: domain.RoleAdmin}
	if _, err := s.Register(ctx, system, ports.RegisterUserInput{
		Name: name, Email: email, Password: password, Role: domain.RoleAdmin,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// Login authenticates by email and password and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return "", nil, domain.Validationf("email e senha são obrigatórios")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, domain.Backend("falha ao buscar usuário", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ListUsers returns every user ordered by name.
func (s *AuthService) ListUsers(ctx context.Context, actor domain.Session) ([]*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.Forbiddenf("apenas administradores podem listar usuários")
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.Backend("falha ao listar usuários", err)
	}
	return users, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, actor domain.Session, current, next string) error {
	if actor.UserID == "" {
		return domain.Forbiddenf("sessão inválida")
	}
	if strings.TrimSpace(current) == "" || strings.TrimSpace(next) == "" {
		return domain.Validationf("preencha todos os campos")
	}
	if err := checkPasswordLength(next, "a nova senha"); err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, actor.UserID)
	if err != nil {
		return domain.Backend("falha ao buscar usuário", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.Validationf("senha atual incorreta")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return domain.Backend("falha ao atualizar senha", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

func checkPasswordLength(password, label string) error {
	switch {
	case len(password) < minPasswordLength:
		return domain.Validationf("%s deve ter pelo menos %d caracteres", label, minPasswordLength)
	case len(password) > maxPasswordBytes:
		return domain.Validationf("%s deve ter no máximo %d bytes", label, maxPasswordBytes)
	}
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
