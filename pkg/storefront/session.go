package storefront

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Backend is the part of the API a Session needs. *Client implements it.
type Backend interface {
	Product(ctx context.Context, id string) (*Product, error)
	SignIn(ctx context.Context, email, password string) (*UserInfo, error)
	SignUp(ctx context.Context, name, email, password string) (*UserInfo, error)
	UpdateProfile(ctx context.Context, token, name, email, password string) (*UserInfo, error)
}

// Session drives the cart and checkout flow for one shopper. Every change
// is persisted before it becomes visible in State, and the checkout guards
// consult Storage rather than memory so a reloaded session resumes safely.
type Session struct {
	mu      sync.Mutex
	state   State
	backend Backend
	store   Storage
	log     zerolog.Logger
}

func NewSession(backend Backend, store Storage, log zerolog.Logger) *Session {
	return &Session{
		state:   State{Nav: Navigation{Step: Browsing}},
		backend: backend,
		store:   store,
		log:     log,
	}
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Cart = cloneCart(st.Cart)
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// Restore reloads the persisted keys, replacing whatever is in memory.
func (s *Session) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var r Restored
	var user UserInfo
	ok, err := loadJSON(ctx, s.store, KeyUserInfo, &user)
	if err != nil {
		return err
	}
	if ok {
		r.User = &user
	}
	if _, err := loadJSON(ctx, s.store, KeyCartItems, &r.Cart); err != nil {
		return err
	}
	if _, err := loadJSON(ctx, s.store, KeyShippingAddress, &r.Shipping); err != nil {
		return err
	}
	if _, err := loadJSON(ctx, s.store, KeyPaymentMethod, &r.Payment); err != nil {
		return err
	}
	if _, err := loadJSON(ctx, s.store, KeySignInRedirect, &r.Redirect); err != nil {
		return err
	}

	s.state = Reduce(s.state, r)
	s.log.Debug().Int("cart_lines", len(r.Cart)).Bool("signed_in", r.User != nil).Msg("session restored")
	return nil
}

// --- Cart ---

// AddItem adds one unit of p. The new quantity is checked against the
// product's live stock; when it would exceed it, ErrOutOfStock is returned
// and nothing changes.
func (s *Session) AddItem(ctx context.Context, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	desired := 1
	if existing, ok := s.state.Item(p.ID); ok {
		desired = existing.Quantity + 1
	}
	return s.setQuantityLocked(ctx, p.ID, desired)
}

// UpdateQuantity sets a line's quantity, with the same stock check as
// AddItem.
func (s *Session) UpdateQuantity(ctx context.Context, productID string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setQuantityLocked(ctx, productID, qty)
}

func (s *Session) setQuantityLocked(ctx context.Context, productID string, qty int) error {
	live, err := s.backend.Product(ctx, productID)
	if err != nil {
		return fmt.Errorf("check stock: %w", err)
	}
	if qty > live.CountInStock {
		s.log.Info().Str("product_id", productID).Int("wanted", qty).Int("in_stock", live.CountInStock).Msg("out of stock")
		return ErrOutOfStock
	}

	next := Reduce(s.state, AddItem{Item: itemFrom(live, qty)})
	if err := s.saveCart(ctx, next.Cart); err != nil {
		return err
	}
	s.state = next
	return nil
}

// RemoveItem drops the line for productID, if any.
func (s *Session) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Reduce(s.state, RemoveItem{ProductID: productID})
	if err := s.saveCart(ctx, next.Cart); err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *Session) saveCart(ctx context.Context, cart []CartItem) error {
	if cart == nil {
		cart = []CartItem{}
	}
	return saveJSON(ctx, s.store, KeyCartItems, cart)
}

// ReviewCart moves to the cart screen.
func (s *Session) ReviewCart() Navigation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navigate(Navigation{Step: CartReview})
}

// ProceedToCheckout leaves the cart. Anonymous shoppers are sent to sign in
// and resume at shipping afterwards.
func (s *Session) ProceedToCheckout(ctx context.Context) (Navigation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enterShippingLocked(ctx)
}

// --- Account ---

// SignIn authenticates and resumes wherever sign-in was demanded from.
func (s *Session) SignIn(ctx context.Context, email, password string) (Navigation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.backend.SignIn(ctx, email, password)
	if err != nil {
		return s.state.Nav, err
	}
	return s.signedInLocked(ctx, user)
}

// SignUp creates an account after checking the confirmation locally; a
// mismatch never reaches the network.
func (s *Session) SignUp(ctx context.Context, name, email, password, confirm string) (Navigation, error) {
	if password != confirm {
		return Navigation{}, ErrPasswordMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.backend.SignUp(ctx, name, email, password)
	if err != nil {
		return s.state.Nav, err
	}
	return s.signedInLocked(ctx, user)
}

func (s *Session) signedInLocked(ctx context.Context, user *UserInfo) (Navigation, error) {
	redirect := s.state.Nav.Redirect
	var stored string
	ok, err := loadJSON(ctx, s.store, KeySignInRedirect, &stored)
	if err != nil {
		return s.state.Nav, err
	}
	if ok && stored != "" {
		redirect = stored
	}

	if err := saveJSON(ctx, s.store, KeyUserInfo, user); err != nil {
		return s.state.Nav, err
	}
	if err := s.store.Delete(ctx, KeySignInRedirect); err != nil {
		return s.state.Nav, err
	}
	s.state = Reduce(s.state, SignedIn{User: *user})
	s.log.Info().Str("user_id", user.ID).Msg("signed in")

	switch stepFor(redirect) {
	case ShippingStep:
		return s.enterShippingLocked(ctx)
	case PaymentStep:
		return s.enterPaymentLocked(ctx)
	}
	return s.navigate(Navigation{Step: Browsing}), nil
}

// UpdateProfile edits the signed-in account. A non-empty password must match
// its confirmation.
func (s *Session) UpdateProfile(ctx context.Context, name, email, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.SignedIn() {
		return ErrNotSignedIn
	}
	user, err := s.backend.UpdateProfile(ctx, s.state.User.Token, name, email, password)
	if err != nil {
		return err
	}
	if err := saveJSON(ctx, s.store, KeyUserInfo, user); err != nil {
		return err
	}
	s.state = Reduce(s.state, SignedIn{User: *user})
	return nil
}

// SignOut forgets the user and the whole checkout draft, cart included.
func (s *Session) SignOut(ctx context.Context) (Navigation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, AllKeys()...); err != nil {
		return s.state.Nav, err
	}
	s.state = Reduce(s.state, SignedOut{})
	return s.state.Nav, nil
}

// --- Checkout ---

// EnterShipping opens the shipping screen, or redirects to sign-in when no
// user is persisted.
func (s *Session) EnterShipping(ctx context.Context) (Navigation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enterShippingLocked(ctx)
}

func (s *Session) enterShippingLocked(ctx context.Context) (Navigation, error) {
	var user UserInfo
	ok, err := loadJSON(ctx, s.store, KeyUserInfo, &user)
	if err != nil {
		return s.state.Nav, err
	}
	if !ok || user.Token == "" {
		return s.requireSignInLocked(ctx, PathShipping)
	}
	return s.navigate(Navigation{Step: ShippingStep}), nil
}

// SetShipping stores a complete address and advances to payment.
func (s *Session) SetShipping(ctx context.Context, addr ShippingAddress) (Navigation, error) {
	addr = trimAddress(addr)
	if !addr.Complete() {
		return s.State().Nav, ErrIncompleteAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nav, err := s.enterShippingLocked(ctx)
	if err != nil {
		return nav, err
	}
	if nav.Step != ShippingStep {
		return nav, ErrNotSignedIn
	}

	if err := saveJSON(ctx, s.store, KeyShippingAddress, addr); err != nil {
		return s.state.Nav, err
	}
	s.state = Reduce(s.state, SaveShipping{Address: addr})
	return s.enterPaymentLocked(ctx)
}

// EnterPayment opens the payment screen. Without a persisted complete
// address the shopper is sent back to shipping.
func (s *Session) EnterPayment(ctx context.Context) (Navigation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enterPaymentLocked(ctx)
}

func (s *Session) enterPaymentLocked(ctx context.Context) (Navigation, error) {
	var addr ShippingAddress
	if _, err := loadJSON(ctx, s.store, KeyShippingAddress, &addr); err != nil {
		return s.state.Nav, err
	}
	if !addr.Complete() {
		return s.enterShippingLocked(ctx)
	}
	return s.navigate(Navigation{Step: PaymentStep}), nil
}

// SetPayment stores the chosen method and returns home. No order is placed.
func (s *Session) SetPayment(ctx context.Context, method PaymentMethod) (Navigation, error) {
	if !method.Valid() {
		return s.State().Nav, ErrUnknownPaymentMethod
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nav, err := s.enterPaymentLocked(ctx)
	if err != nil {
		return nav, err
	}
	if nav.Step != PaymentStep {
		return nav, ErrIncompleteAddress
	}

	if err := saveJSON(ctx, s.store, KeyPaymentMethod, method); err != nil {
		return s.state.Nav, err
	}
	s.state = Reduce(s.state, SavePayment{Method: method})
	return s.navigate(Navigation{Step: Browsing}), nil
}

// requireSignInLocked sends the shopper to sign in and persists where to
// resume, so the return path survives a reload.
func (s *Session) requireSignInLocked(ctx context.Context, redirect string) (Navigation, error) {
	if err := saveJSON(ctx, s.store, KeySignInRedirect, redirect); err != nil {
		return s.state.Nav, err
	}
	return s.navigate(Navigation{Step: RequireSignIn, Redirect: redirect}), nil
}

func (s *Session) navigate(to Navigation) Navigation {
	s.state = Reduce(s.state, Navigate{To: to})
	return to
}

func trimAddress(a ShippingAddress) ShippingAddress {
	return ShippingAddress{
		FullName:   strings.TrimSpace(a.FullName),
		Address:    strings.TrimSpace(a.Address),
		City:       strings.TrimSpace(a.City),
		PostalCode: strings.TrimSpace(a.PostalCode),
		Country:    strings.TrimSpace(a.Country),
	}
}
