package ports

import (
	"context"

	"github.com/parfumerie/storefront/internal/core/domain"
)

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*domain.Claims, error)
}

// UserService is the credential store use-case layer.
type UserService interface {
	Create(ctx context.Context, name, email, password string) (*domain.User, error)
	Verify(ctx context.Context, email, password string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error)
	AdminUpdate(ctx context.Context, userID string, patch domain.AdminPatch) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, userID string) error
}
