package ports

import (
	"context"

	"github.com/parfumerie/storefront/internal/core/domain"
)

// ProductRepository defines persistence for catalog entries. Missing records
// map to domain.ErrProductNotFound.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id string, fields domain.ProductFields) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, products []*domain.Product) ([]*domain.Product, error)
}

// CategoryCache stores the distinct category list between catalog mutations.
type CategoryCache interface {
	Get(ctx context.Context) ([]string, error)
	Set(ctx context.Context, categories []string) error
	Invalidate(ctx context.Context) error
}
