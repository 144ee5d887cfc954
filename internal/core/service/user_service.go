package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/parfumerie/storefront/internal/core/domain"
	"github.com/parfumerie/storefront/internal/core/ports"
)

// UserService implements the credential store on top of a UserRepository.
type UserService struct {
	repo           ports.UserRepository
	protectedEmail string
	cost           int
	logger         zerolog.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserService returns a UserService. protectedEmail names the seed admin
// that Delete refuses to remove; empty falls back to domain.DefaultAdminEmail.
func NewUserService(repo ports.UserRepository, protectedEmail string, logger zerolog.Logger) *UserService {
	if protectedEmail == "" {
		protectedEmail = domain.DefaultAdminEmail
	}
	return &UserService{
		repo:           repo,
		protectedEmail: strings.ToLower(protectedEmail),
		cost:           bcrypt.DefaultCost,
		logger:         logger,
	}
}

func (s *UserService) Create(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrMissingField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Verify checks a password against the stored hash. Unknown emails and wrong
// passwords both return domain.ErrInvalidCredentials after a bcrypt
// comparison, so neither the error nor the timing tells them apart.
func (s *UserService) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile applies a partial self-service edit.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != "" {
		user.Name = patch.Name
	}
	if patch.Email != "" {
		user.Email = normalizeEmail(patch.Email)
	}
	if patch.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(patch.Password), s.cost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// AdminUpdate edits another account. Name and email fall back to the stored
// values; the admin flag is always taken from the patch.
func (s *UserService) AdminUpdate(ctx context.Context, userID string, patch domain.AdminPatch) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != "" {
		user.Name = patch.Name
	}
	if patch.Email != "" {
		user.Email = normalizeEmail(patch.Email)
	}
	user.IsAdmin = patch.IsAdmin
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Bool("is_admin", updated.IsAdmin).Msg("user updated by admin")
	return updated, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// Delete removes an account. The seed admin is never deletable.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if strings.EqualFold(user.Email, s.protectedEmail) {
		s.logger.Warn().Str("user_id", userID).Msg("refused to delete protected account")
		return domain.ErrProtectedAccount
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("user deleted")
	return nil
}

func (s *UserService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("storefront-dummy-password"), s.cost)
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
