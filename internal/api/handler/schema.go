package handler

import "github.com/parfumerie/storefront/internal/core/domain"

// messageResponse is the envelope for confirmations and errors alike.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Users ---

// signinRequest is not validated: any malformed credential is simply a
// failed sign-in.
type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password"`
}

type adminUserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"   validate:"omitempty,email"`
	IsAdmin bool   `json:"isAdmin"`
}

// authResponse is returned by signin, signup and profile updates.
type authResponse struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

type userUpdatedResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// --- Products ---

type productRequest struct {
	Name         string  `json:"name"         validate:"required"`
	Slug         string  `json:"slug"         validate:"required"`
	Price        float64 `json:"price"        validate:"gte=0"`
	Image        string  `json:"image"`
	Category     string  `json:"category"`
	Brand        string  `json:"brand"`
	CountInStock int     `json:"countInStock" validate:"gte=0"`
	Description  string  `json:"description"`
}

func (r productRequest) fields() domain.ProductFields {
	return domain.ProductFields{
		Name:         r.Name,
		Slug:         r.Slug,
		Price:        r.Price,
		Image:        r.Image,
		Category:     r.Category,
		Brand:        r.Brand,
		CountInStock: r.CountInStock,
		Description:  r.Description,
	}
}

type productCreatedResponse struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

type searchResponse struct {
	Products []*domain.Product `json:"products"`
}

// --- Seed ---

type seedResponse struct {
	CreatedProducts []*domain.Product `json:"createdProducts"`
	CreatedUsers    []*domain.User    `json:"createdUsers"`
}
