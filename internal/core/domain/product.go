package domain

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateSlug   = errors.New("slug already in use")
)

// Product is a catalog entry.
type Product struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Category     string    `json:"category"`
	Image        string    `json:"image"`
	Price        float64   `json:"price"`
	CountInStock int       `json:"countInStock"`
	Brand        string    `json:"brand"`
	Rating       float64   `json:"rating"`
	NumReviews   int       `json:"numReviews"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProductFields holds the admin-editable fields. An update replaces all of
// them, matching the edit screen which always submits the full form.
type ProductFields struct {
	Name         string
	Slug         string
	Price        float64
	Image        string
	Category     string
	Brand        string
	CountInStock int
	Description  string
}

// SearchFilter narrows a catalog search. The literal "all" or an empty
// value disables a filter.
type SearchFilter struct {
	Query    string
	Category string
}

const FilterAll = "all"
