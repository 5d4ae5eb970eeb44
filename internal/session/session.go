// Package session is the session-scoped key-value store behind the cart,
// add-on selection and checkout state. Session identity is threaded
// explicitly through every operation; nothing here is global.
package session

import (
	"context"

	"book-bazaar/internal/model"
)

// Checkout is the per-session checkout state that gates order creation and
// ties the gateway round-trip back to the session.
type Checkout struct {
	VerifiedPhone  string `json:"verified_phone,omitempty"`
	VerificationID string `json:"verification_id,omitempty"`
	TxnID          string `json:"txn_id,omitempty"`
}

// Store persists session-scoped state. Missing keys read as empty values,
// never as errors.
type Store interface {
	// Cart retrieves the session cart; an absent cart is an empty map.
	Cart(ctx context.Context, sid string) (model.Cart, error)

	// SaveCart persists the cart back to the session.
	SaveCart(ctx context.Context, sid string, cart model.Cart) error

	// Addons retrieves the add-on selection; absent reads as empty.
	Addons(ctx context.Context, sid string) (model.AddonSelection, error)

	// SaveAddons persists the add-on selection.
	SaveAddons(ctx context.Context, sid string, sel model.AddonSelection) error

	// CheckoutState retrieves the checkout state; absent reads as zero.
	CheckoutState(ctx context.Context, sid string) (Checkout, error)

	// SaveCheckoutState persists the checkout state.
	SaveCheckoutState(ctx context.Context, sid string, st Checkout) error

	// ClearCheckout removes cart, add-ons and checkout state in one go,
	// used after a confirmed payment.
	ClearCheckout(ctx context.Context, sid string) error
}

const (
	keyCart     = "cart"
	keyAddons   = "addons"
	keyCheckout = "checkout"
)
