package ports

import (
	"context"

	"github.com/parfumerie/storefront/internal/core/domain"
)

// ProductService defines catalog use-cases.
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	CreateSample(ctx context.Context) (*domain.Product, error)
	Update(ctx context.Context, id string, fields domain.ProductFields) error
	Delete(ctx context.Context, id string) error
}

// SeedResult reports the rows inserted by a reseed.
type SeedResult struct {
	Products []*domain.Product
	Users    []*domain.User
}

// SeedService resets the store to the bundled fixtures.
type SeedService interface {
	Seed(ctx context.Context) (*SeedResult, error)
}
