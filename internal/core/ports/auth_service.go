package ports

import (
	"context"

	"github.com/distribuidora/analise-credito/internal/core/domain"
)

// RegisterUserInput carries the data an administrator supplies for a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Register(ctx context.Context, actor domain.Session, in RegisterUserInput) (*domain.User, error)
	ListUsers(ctx context.Context, actor domain.Session) ([]*domain.User, error)
	ChangePassword(ctx context.Context, actor domain.Session, current, next string) error
}
