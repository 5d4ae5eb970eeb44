package session

import (
	"context"
	"testing"

	"book-bazaar/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCartRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	cart, err := store.Cart(ctx, "sid-1")
	require.NoError(t, err)
	assert.Empty(t, cart, "absent cart should read as empty")

	cart[model.LineKey(model.ItemTypeBook, 1)] = model.CartLine{
		ID: 1, Type: model.ItemTypeBook, Title: "Gitanjali", Price: 100, Quantity: 2,
	}
	require.NoError(t, store.SaveCart(ctx, "sid-1", cart))

	got, err := store.Cart(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got["book_1"].Quantity)
	assert.Equal(t, model.Price(100), got["book_1"].Price)
}

func TestMemoryStoreSessionsIsolated(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	cart := model.Cart{"book_1": {ID: 1, Type: model.ItemTypeBook, Price: 50, Quantity: 1}}
	require.NoError(t, store.SaveCart(ctx, "sid-a", cart))

	other, err := store.Cart(ctx, "sid-b")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMemoryStoreCheckoutState(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	st, err := store.CheckoutState(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, Checkout{}, st)

	st.VerifiedPhone = "+919876543210"
	st.VerificationID = "7e5c0f6e-0000-0000-0000-000000000001"
	require.NoError(t, store.SaveCheckoutState(ctx, "sid-1", st))

	got, err := store.CheckoutState(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", got.VerifiedPhone)
}

func TestMemoryStoreClearCheckout(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SaveCart(ctx, "sid-1", model.Cart{
		"book_1": {ID: 1, Type: model.ItemTypeBook, Price: 50, Quantity: 1},
	}))
	require.NoError(t, store.SaveAddons(ctx, "sid-1", model.AddonSelection{"packing": true}))
	require.NoError(t, store.SaveCheckoutState(ctx, "sid-1", Checkout{TxnID: "TXN-378A9FCDF2DB"}))

	require.NoError(t, store.ClearCheckout(ctx, "sid-1"))

	cart, err := store.Cart(ctx, "sid-1")
	require.NoError(t, err)
	assert.Empty(t, cart)

	sel, err := store.Addons(ctx, "sid-1")
	require.NoError(t, err)
	assert.Empty(t, sel)

	st, err := store.CheckoutState(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, Checkout{}, st)
}
