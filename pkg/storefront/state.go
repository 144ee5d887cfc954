package storefront

// Step is a screen of the shopping flow.
type Step string

const (
	Browsing        Step = "browsing"
	CartReview      Step = "cart"
	RequireSignIn   Step = "signin"
	ShippingStep    Step = "shipping"
	PaymentStep     Step = "payment"
)

// Redirect targets carried through sign-in.
const (
	PathHome     = "/"
	PathShipping = "/shipping"
	PathPayment  = "/payment"
)

// Navigation tells the caller which screen to show next. Redirect is only
// set alongside RequireSignIn and names where to resume afterwards.
type Navigation struct {
	Step     Step
	Redirect string
}

func stepFor(path string) Step {
	switch path {
	case PathShipping:
		return ShippingStep
	case PathPayment:
		return PaymentStep
	}
	return Browsing
}

// State is the whole client state. Values are never mutated in place;
// Reduce returns a fresh copy.
type State struct {
	Nav      Navigation
	User     *UserInfo
	Cart     []CartItem
	Shipping ShippingAddress
	Payment  PaymentMethod
}

// SignedIn reports whether a user with a token is present.
func (s State) SignedIn() bool {
	return s.User != nil && s.User.Token != ""
}

// Item returns the cart line for productID.
func (s State) Item(productID string) (CartItem, bool) {
	for _, it := range s.Cart {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CartItem{}, false
}

// ItemCount is the number of units across all lines.
func (s State) ItemCount() int {
	n := 0
	for _, it := range s.Cart {
		n += it.Quantity
	}
	return n
}

// Subtotal is the cart value at snapshot prices.
func (s State) Subtotal() float64 {
	var total float64
	for _, it := range s.Cart {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Action is an input to Reduce.
type Action interface {
	action()
}

// AddItem upserts a line, replacing its quantity. It is ignored when the
// quantity is below one or above the line's stock snapshot.
type AddItem struct{ Item CartItem }

type RemoveItem struct{ ProductID string }

type Navigate struct{ To Navigation }

type SignedIn struct{ User UserInfo }

type SignedOut struct{}

type SaveShipping struct{ Address ShippingAddress }

type SavePayment struct{ Method PaymentMethod }

// Restored replaces the persisted parts of the state after a reload. A
// non-empty Redirect puts the flow back on the pending sign-in.
type Restored struct {
	User     *UserInfo
	Cart     []CartItem
	Shipping ShippingAddress
	Payment  PaymentMethod
	Redirect string
}

func (AddItem) action()      {}
func (RemoveItem) action()   {}
func (Navigate) action()     {}
func (SignedIn) action()     {}
func (SignedOut) action()    {}
func (SaveShipping) action() {}
func (SavePayment) action()  {}
func (Restored) action()     {}

// Reduce applies a to s. It has no side effects and does not alias the
// input cart.
func Reduce(s State, a Action) State {
	next := s
	next.Cart = cloneCart(s.Cart)

	switch a := a.(type) {
	case AddItem:
		it := a.Item
		if it.Quantity < 1 || it.Quantity > it.CountInStock {
			return next
		}
		replaced := false
		for i := range next.Cart {
			if next.Cart[i].ProductID == it.ProductID {
				next.Cart[i] = it
				replaced = true
				break
			}
		}
		if !replaced {
			next.Cart = append(next.Cart, it)
		}
	case RemoveItem:
		kept := next.Cart[:0]
		for _, it := range next.Cart {
			if it.ProductID != a.ProductID {
				kept = append(kept, it)
			}
		}
		next.Cart = kept
	case Navigate:
		next.Nav = a.To
	case SignedIn:
		u := a.User
		next.User = &u
	case SignedOut:
		return State{Nav: Navigation{Step: RequireSignIn}}
	case SaveShipping:
		next.Shipping = a.Address
	case SavePayment:
		next.Payment = a.Method
	case Restored:
		if a.User != nil {
			u := *a.User
			next.User = &u
		} else {
			next.User = nil
		}
		next.Cart = cloneCart(a.Cart)
		next.Shipping = a.Shipping
		next.Payment = a.Payment
		if a.Redirect != "" {
			next.Nav = Navigation{Step: RequireSignIn, Redirect: a.Redirect}
		}
	}
	return next
}

func cloneCart(in []CartItem) []CartItem {
	if in == nil {
		return nil
	}
	out := make([]CartItem, len(in))
	copy(out, in)
	return out
}
