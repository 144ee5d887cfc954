package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/parfumerie/storefront/internal/core/domain"
	"github.com/parfumerie/storefront/internal/core/ports"
)

const categoriesFlightKey = "categories"

type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.CategoryCache
	flight singleflight.Group
	logger zerolog.Logger
	now    func() time.Time

	// generation is bumped on every catalog mutation. A category fetch only
	// keeps its cache write if no mutation happened while it was in flight.
	generation atomic.Uint64
}

// NewProductService returns a ProductService. cache may be nil, in which case
// categories are always read from the repository.
func NewProductService(repo ports.ProductRepository, cache ports.CategoryCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, logger: logger, now: time.Now}
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *ProductService) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Product, error) {
	if filter.Query == domain.FilterAll {
		filter.Query = ""
	}
	if filter.Category == domain.FilterAll {
		filter.Category = ""
	}
	return s.repo.Search(ctx, filter)
}

// Categories returns the distinct product categories. Concurrent cache misses
// collapse into a single repository query.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		}
	}

	v, err, _ := s.flight.Do(categoriesFlightKey, func() (interface{}, error) {
		started := s.generation.Load()
		categories, err := s.repo.Categories(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil && s.generation.Load() == started {
			if err := s.cache.Set(ctx, categories); err != nil {
				s.logger.Warn().Err(err).Msg("category cache write failed")
			}
			// A mutation that landed between the check and the write has
			// already run its Invalidate; drop the entry we just wrote.
			if s.generation.Load() != started {
				s.dropCache(ctx)
			}
		}
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// CreateSample inserts a placeholder product for the admin to edit.
func (s *ProductService) CreateSample(ctx context.Context) (*domain.Product, error) {
	now := s.now().UTC()
	stamp := now.UnixMilli()
	created, err := s.repo.Create(ctx, &domain.Product{
		Name:        fmt.Sprintf("sample name %d", stamp),
		Slug:        fmt.Sprintf("sample-name-%d", stamp),
		Image:       "/images/poison.jpg",
		Category:    "sample category",
		Brand:       "sample brand",
		Description: "sample description",
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("product_id", created.ID).Msg("sample product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id string, fields domain.ProductFields) error {
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Info().Str("product_id", id).Msg("product updated")
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	s.generation.Add(1)
	s.flight.Forget(categoriesFlightKey)
	s.dropCache(ctx)
}

func (s *ProductService) dropCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("category cache invalidation failed")
	}
}
