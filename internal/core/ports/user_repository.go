package ports

import (
	"context"

	"github.com/parfumerie/storefront/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Implementations map
// unique-index violations on email to domain.ErrDuplicateEmail and missing
// records to domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// ReplaceAll drops every account and inserts users, returning the stored rows.
	ReplaceAll(ctx context.Context, users []*domain.User) ([]*domain.User, error)
}
