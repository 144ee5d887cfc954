// Package storefront is the shopper-side half of the store: an HTTP client
// for the backend, a persisted cart and a checkout flow driven by a pure
// reducer.
package storefront

import (
	"errors"
	"strings"
)

var (
	ErrOutOfStock           = errors.New("sorry, product is out of stock")
	ErrIncompleteAddress    = errors.New("shipping address is incomplete")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrNotSignedIn          = errors.New("not signed in")
)

// Product is the catalog entry as served by the API.
type Product struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Category     string  `json:"category"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"countInStock"`
	Brand        string  `json:"brand"`
	Rating       float64 `json:"rating"`
	NumReviews   int     `json:"numReviews"`
	Description  string  `json:"description"`
}

// CartItem is one cart line. Price and CountInStock are snapshots taken
// when the line was last changed.
type CartItem struct {
	ProductID    string  `json:"productId"`
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"countInStock"`
	Quantity     int     `json:"quantity"`
}

func itemFrom(p *Product, qty int) CartItem {
	return CartItem{
		ProductID:    p.ID,
		Slug:         p.Slug,
		Name:         p.Name,
		Image:        p.Image,
		Price:        p.Price,
		CountInStock: p.CountInStock,
		Quantity:     qty,
	}
}

// UserInfo is the signed-in identity kept by the client, token included.
type UserInfo struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Complete reports whether every field holds more than whitespace.
func (a ShippingAddress) Complete() bool {
	for _, f := range []string{a.FullName, a.Address, a.City, a.PostalCode, a.Country} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

type PaymentMethod string

const (
	PayPal         PaymentMethod = "PayPal"
	CardPayment    PaymentMethod = "CardPayment"
	CashOnDelivery PaymentMethod = "CashOnDelivery"
)

// PaymentMethods lists the accepted methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PayPal, CardPayment, CashOnDelivery}
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PayPal, CardPayment, CashOnDelivery:
		return true
	}
	return false
}
