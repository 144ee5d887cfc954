package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/parfumerie/storefront/internal/core/domain"
	"github.com/parfumerie/storefront/internal/core/ports"
)

type SeedService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	cache    ports.CategoryCache
	cost     int
	logger   zerolog.Logger
}

func NewSeedService(products ports.ProductRepository, users ports.UserRepository, cache ports.CategoryCache, logger zerolog.Logger) *SeedService {
	return &SeedService{
		products: products,
		users:    users,
		cache:    cache,
		cost:     bcrypt.DefaultCost,
		logger:   logger,
	}
}

// Seed wipes products and users and inserts the bundled fixtures. Password
// hashing happens before any collection is touched. The two replacements are
// not atomic: users go first, and a failure there leaves the catalog as it was.
func (s *SeedService) Seed(ctx context.Context) (*ports.SeedResult, error) {
	now := time.Now().UTC()

	seedUsers := domain.SeedUsers()
	users := make([]*domain.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("seed users: %w", err)
		}
		users = append(users, &domain.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hash),
			IsAdmin:      su.IsAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	fixtures := domain.SeedProducts()
	products := make([]*domain.Product, 0, len(fixtures))
	for i := range fixtures {
		p := fixtures[i]
		p.CreatedAt, p.UpdatedAt = now, now
		products = append(products, &p)
	}

	createdUsers, err := s.users.ReplaceAll(ctx, users)
	if err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	createdProducts, err := s.products.ReplaceAll(ctx, products)
	if err != nil {
		return nil, fmt.Errorf("seed products: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("category cache invalidation failed")
		}
	}

	s.logger.Info().
		Int("products", len(createdProducts)).
		Int("users", len(createdUsers)).
		Msg("store reseeded")

	return &ports.SeedResult{Products: createdProducts, Users: createdUsers}, nil
}
