package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/parfumerie/storefront/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu         sync.Mutex
	users      map[string]*domain.User
	nextID     int
	replaceErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) ReplaceAll(ctx context.Context, users []*domain.User) ([]*domain.User, error) {
	r.mu.Lock()
	if r.replaceErr != nil {
		r.mu.Unlock()
		return nil, r.replaceErr
	}
	r.users = make(map[string]*domain.User)
	r.mu.Unlock()

	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		created, err := r.Create(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, created)
	}
	return out, nil
}

type stubProductRepo struct {
	mu             sync.Mutex
	products       map[string]*domain.Product
	nextID         int
	categoryCalls  int
	lastSearch     domain.SearchFilter
	categoriesHook func()
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("product-%d", r.nextID)
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) FindBySlug(_ context.Context, slug string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Search mirrors the Mongo filter: case-insensitive substring on name plus
// exact category.
func (r *stubProductRepo) Search(ctx context.Context, f domain.SearchFilter) ([]*domain.Product, error) {
	r.mu.Lock()
	r.lastSearch = f
	r.mu.Unlock()

	all, _ := r.List(ctx)
	var out []*domain.Product
	for _, p := range all {
		if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) Categories(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	r.categoryCalls++
	hook := r.categoriesHook
	r.mu.Unlock()

	all, _ := r.List(ctx)
	seen := map[string]struct{}{}
	out := []string{}
	for _, p := range all {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	// The hook runs after the read, so it sees the same window a concurrent
	// writer would.
	if hook != nil {
		hook()
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, f domain.ProductFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Name, p.Slug, p.Price, p.Image = f.Name, f.Slug, f.Price, f.Image
	p.Category, p.Brand, p.CountInStock, p.Description = f.Category, f.Brand, f.CountInStock, f.Description
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) ReplaceAll(ctx context.Context, products []*domain.Product) ([]*domain.Product, error) {
	r.mu.Lock()
	r.products = make(map[string]*domain.Product)
	r.mu.Unlock()

	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		created, _ := r.Create(ctx, p)
		out = append(out, created)
	}
	return out, nil
}

type stubCategoryCache struct {
	mu          sync.Mutex
	value       []string
	invalidated int
	err         error
}

func (c *stubCategoryCache) Get(context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.value, nil
}

func (c *stubCategoryCache) Set(_ context.Context, categories []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = categories
	return nil
}

func (c *stubCategoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.invalidated++
	return nil
}
