package service

import (
	"context"
	"net/url"

	"book-bazaar/internal/model"

	"github.com/google/uuid"
)

// CatalogService defines catalogue browsing and search operations.
type CatalogService interface {
	// Search returns full search results for a free-text query.
	Search(ctx context.Context, query string) ([]model.SearchResult, error)

	// Suggestions returns up to ten deduplicated autocomplete entries,
	// books before products. Queries shorter than two characters after
	// trimming return nothing.
	Suggestions(ctx context.Context, query string) ([]model.SearchResult, error)

	// BooksByCategory lists a category shelf, optionally sale items only.
	BooksByCategory(ctx context.Context, category string, onSaleOnly bool) ([]model.Book, error)

	// BookBySlug retrieves a single book page.
	BookBySlug(ctx context.Context, slug string) (*model.Book, error)
}

// CartService defines the session cart operations.
type CartService interface {
	// Add puts an item in the cart or increments its quantity.
	Add(ctx context.Context, sid string, req *model.AddToCartRequest) (*model.CartSummary, error)

	// UpdateQuantity sets an item's quantity; zero or below removes it and
	// an absent item is a no-op.
	UpdateQuantity(ctx context.Context, sid string, itemType model.ItemType, itemID int64, quantity int) (*model.CartSummary, error)

	// Remove deletes an item regardless of quantity.
	Remove(ctx context.Context, sid string, itemType model.ItemType, itemID int64) (*model.CartSummary, error)

	// Clear empties the cart.
	Clear(ctx context.Context, sid string) (*model.CartSummary, error)

	// List returns the full cart with the add-on total folded in.
	List(ctx context.Context, sid string) (*model.CartView, error)

	// BuyNow replaces the cart with a single book, looked up by id.
	BuyNow(ctx context.Context, sid string, bookID int64) (*model.CartSummary, error)

	// UpdateAddons replaces the add-on selection.
	UpdateAddons(ctx context.Context, sid string, sel model.AddonSelection) (*model.CartView, error)

	// Addons returns the current selection and its total.
	Addons(ctx context.Context, sid string) (model.AddonSelection, float64, error)
}

// VerificationService defines the OTP phone verification flow.
type VerificationService interface {
	// RequestOTP normalises the phone, creates a verification record and
	// dispatches the code. The record is removed if dispatch fails.
	RequestOTP(ctx context.Context, phone string, method model.DeliveryMethod) (*model.PhoneVerification, error)

	// VerifyOTP checks a submitted code and, on success, binds the verified
	// phone to the session.
	VerifyOTP(ctx context.Context, sid string, id uuid.UUID, code string) error

	// ResendOTP regenerates the code on an existing record and dispatches it.
	ResendOTP(ctx context.Context, id uuid.UUID) error
}

// CheckoutService turns a session cart into a pending order and the signed
// gateway parameter set.
type CheckoutService interface {
	Initiate(ctx context.Context, sid string, req *model.CheckoutRequest) (*model.CheckoutResponse, error)
}

// PaymentService resolves gateway callbacks.
type PaymentService interface {
	// HandleSuccess verifies the callback signature and finalises or
	// discards the order accordingly.
	HandleSuccess(ctx context.Context, sid string, form url.Values) (*model.PaymentResult, error)

	// HandleFailure deletes the pending order referenced by the callback,
	// if any, and reports the gateway's message.
	HandleFailure(ctx context.Context, sid string, form url.Values) (*model.PaymentResult, error)
}
