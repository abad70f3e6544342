package ports

import (
	"context"

	"github.com/distribuidora/analise-credito/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// List returns all users ordered by name.
	List(ctx context.Context) ([]*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}
