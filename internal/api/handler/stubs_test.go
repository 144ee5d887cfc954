package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/parfumerie/storefront/internal/core/domain"
	"github.com/parfumerie/storefront/internal/core/ports"
)

type stubUserService struct {
	createFn        func(ctx context.Context, name, email, password string) (*domain.User, error)
	verifyFn        func(ctx context.Context, email, password string) (*domain.User, error)
	updateProfileFn func(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error)
	adminUpdateFn   func(ctx context.Context, userID string, patch domain.AdminPatch) (*domain.User, error)
	getFn           func(ctx context.Context, userID string) (*domain.User, error)
	listFn          func(ctx context.Context) ([]*domain.User, error)
	deleteFn        func(ctx context.Context, userID string) error
}

func (s *stubUserService) Create(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.createFn(ctx, name, email, password)
}

func (s *stubUserService) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	return s.verifyFn(ctx, email, password)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error) {
	return s.updateProfileFn(ctx, userID, patch)
}

func (s *stubUserService) AdminUpdate(ctx context.Context, userID string, patch domain.AdminPatch) (*domain.User, error) {
	return s.adminUpdateFn(ctx, userID, patch)
}

func (s *stubUserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.getFn(ctx, userID)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Delete(ctx context.Context, userID string) error {
	return s.deleteFn(ctx, userID)
}

type stubTokenService struct{}

func (stubTokenService) Issue(user *domain.User) (string, error) { return "token-" + user.ID, nil }

func (stubTokenService) Verify(string) (*domain.Claims, error) { return nil, domain.ErrInvalidToken }

type stubProductService struct {
	products   []*domain.Product
	lastFilter domain.SearchFilter
	lastUpdate domain.ProductFields
	err        error
}

func (s *stubProductService) find(id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id || p.Slug == id {
			return p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (s *stubProductService) List(context.Context) ([]*domain.Product, error) {
	return s.products, s.err
}

func (s *stubProductService) Get(_ context.Context, id string) (*domain.Product, error) {
	return s.find(id)
}

func (s *stubProductService) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	return s.find(slug)
}

func (s *stubProductService) Search(_ context.Context, f domain.SearchFilter) ([]*domain.Product, error) {
	s.lastFilter = f
	return s.products, s.err
}

func (s *stubProductService) Categories(context.Context) ([]string, error) {
	return []string{"Femme", "Homme"}, s.err
}

func (s *stubProductService) CreateSample(context.Context) (*domain.Product, error) {
	return &domain.Product{ID: "new", Name: "sample name 1"}, s.err
}

func (s *stubProductService) Update(_ context.Context, id string, f domain.ProductFields) error {
	if _, err := s.find(id); err != nil {
		return err
	}
	s.lastUpdate = f
	return nil
}

func (s *stubProductService) Delete(_ context.Context, id string) error {
	_, err := s.find(id)
	return err
}

type stubSeedService struct{}

func (stubSeedService) Seed(context.Context) (*ports.SeedResult, error) {
	return &ports.SeedResult{
		Products: []*domain.Product{{ID: "p1"}},
		Users:    []*domain.User{{ID: "u1", PasswordHash: "secret-hash"}},
	}, nil
}

// newJSONContext builds an echo context with the validator installed.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
