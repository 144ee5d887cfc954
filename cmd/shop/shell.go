package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/parfumerie/storefront/pkg/storefront"
)

const usage = `commands:
  products                       list the catalog
  search <query> [category]      search by name and category
  categories                     list categories
  add <product-id>               add one unit to the cart
  qty <product-id> <n>           set a cart line quantity
  remove <product-id>            drop a cart line
  cart                           show the cart
  checkout                       proceed to checkout
  signin <email> <password>
  signup <name> <email> <password> <confirm>
  profile <name> <email> [<password> <confirm>]
  signout                        forget the user, cart and checkout draft
  shipping <name> <address> <city> <postal-code> <country>
  payment <PayPal|CardPayment|CashOnDelivery>
  status                         show the current step
  users                          list accounts (admin only)`

type shell struct {
	api     *storefront.Client
	session *storefront.Session
	out     io.Writer
}

func (sh *shell) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "products":
		products, err := sh.api.Products(ctx)
		if err != nil {
			return err
		}
		sh.printProducts(products)
		return nil

	case "search":
		if err := want(cmd, args, 1, 2); err != nil {
			return err
		}
		category := ""
		if len(args) == 2 {
			category = args[1]
		}
		products, err := sh.api.Search(ctx, args[0], category)
		if err != nil {
			return err
		}
		sh.printProducts(products)
		return nil

	case "categories":
		cats, err := sh.api.Categories(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(sh.out, strings.Join(cats, "\n"))
		return nil

	case "add":
		if err := want(cmd, args, 1, 1); err != nil {
			return err
		}
		if err := sh.session.AddItem(ctx, storefront.Product{ID: args[0]}); err != nil {
			return err
		}
		sh.printCart()
		return nil

	case "qty":
		if err := want(cmd, args, 2, 2); err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("qty: %q is not a number", args[1])
		}
		if err := sh.session.UpdateQuantity(ctx, args[0], n); err != nil {
			return err
		}
		sh.printCart()
		return nil

	case "remove":
		if err := want(cmd, args, 1, 1); err != nil {
			return err
		}
		if err := sh.session.RemoveItem(ctx, args[0]); err != nil {
			return err
		}
		sh.printCart()
		return nil

	case "cart":
		sh.session.ReviewCart()
		sh.printCart()
		return nil

	case "checkout":
		return sh.navigated(sh.session.ProceedToCheckout(ctx))

	case "signin":
		if err := want(cmd, args, 2, 2); err != nil {
			return err
		}
		return sh.navigated(sh.session.SignIn(ctx, args[0], args[1]))

	case "signup":
		if err := want(cmd, args, 4, 4); err != nil {
			return err
		}
		return sh.navigated(sh.session.SignUp(ctx, args[0], args[1], args[2], args[3]))

	case "profile":
		if len(args) != 2 && len(args) != 4 {
			return fmt.Errorf("profile: expected 2 or 4 arguments, got %d", len(args))
		}
		password, confirm := "", ""
		if len(args) == 4 {
			password, confirm = args[2], args[3]
		}
		if err := sh.session.UpdateProfile(ctx, args[0], args[1], password, confirm); err != nil {
			return err
		}
		fmt.Fprintln(sh.out, "profile updated")
		return nil

	case "signout":
		return sh.navigated(sh.session.SignOut(ctx))

	case "shipping":
		if err := want(cmd, args, 5, 5); err != nil {
			return err
		}
		return sh.navigated(sh.session.SetShipping(ctx, storefront.ShippingAddress{
			FullName:   args[0],
			Address:    args[1],
			City:       args[2],
			PostalCode: args[3],
			Country:    args[4],
		}))

	case "payment":
		if err := want(cmd, args, 0, 1); err != nil {
			return err
		}
		if len(args) == 0 {
			return sh.navigated(sh.session.EnterPayment(ctx))
		}
		return sh.navigated(sh.session.SetPayment(ctx, storefront.PaymentMethod(args[0])))

	case "status":
		sh.printStatus()
		return nil

	case "users":
		st := sh.session.State()
		if !st.SignedIn() {
			return errors.New("users: sign in as an admin first")
		}
		accounts, err := sh.api.Users(ctx, st.User.Token)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(sh.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tADMIN")
		for _, a := range accounts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", a.ID, a.Name, a.Email, a.IsAdmin)
		}
		return w.Flush()
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func want(cmd string, args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return fmt.Errorf("%s: expected %d arguments, got %d", cmd, lo, len(args))
		}
		return fmt.Errorf("%s: expected %d to %d arguments, got %d", cmd, lo, hi, len(args))
	}
	return nil
}

func (sh *shell) navigated(nav storefront.Navigation, err error) error {
	if err != nil {
		return err
	}
	switch nav.Step {
	case storefront.RequireSignIn:
		fmt.Fprintf(sh.out, "sign in to continue (then: %s)\n", nav.Redirect)
	case storefront.ShippingStep:
		fmt.Fprintln(sh.out, "next: shipping <name> <address> <city> <postal-code> <country>")
	case storefront.PaymentStep:
		fmt.Fprintln(sh.out, "next: payment <PayPal|CardPayment|CashOnDelivery>")
	default:
		fmt.Fprintln(sh.out, "ok")
	}
	return nil
}

func (sh *shell) printProducts(products []storefront.Product) {
	w := tabwriter.NewWriter(sh.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\n", p.ID, p.Name, p.Category, p.Price, p.CountInStock)
	}
	_ = w.Flush()
}

func (sh *shell) printCart() {
	st := sh.session.State()
	if len(st.Cart) == 0 {
		fmt.Fprintln(sh.out, "cart is empty")
		return
	}
	w := tabwriter.NewWriter(sh.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tPRICE")
	for _, it := range st.Cart {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\n", it.ProductID, it.Name, it.Quantity, it.Price)
	}
	fmt.Fprintf(w, "\t\t%d items\t%.2f\n", st.ItemCount(), st.Subtotal())
	_ = w.Flush()
}

func (sh *shell) printStatus() {
	st := sh.session.State()
	user := "anonymous"
	if st.SignedIn() {
		user = st.User.Email
	}
	fmt.Fprintf(sh.out, "user: %s\n", user)
	fmt.Fprintf(sh.out, "cart: %d items\n", st.ItemCount())
	if st.Shipping.Complete() {
		fmt.Fprintf(sh.out, "shipping: %s, %s %s, %s\n", st.Shipping.Address, st.Shipping.PostalCode, st.Shipping.City, st.Shipping.Country)
	}
	if st.Payment != "" {
		fmt.Fprintf(sh.out, "payment: %s\n", st.Payment)
	}
}
