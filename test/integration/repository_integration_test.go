package integration

import (
	"context"
	"testing"
	"time"

	"book-bazaar/internal/model"
	"book-bazaar/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, db *TestDB) {
	t.Helper()
	ctx := context.Background()

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO books (title, slug, price, category, image_url, on_sale) VALUES
			('Gitanjali', 'gitanjali', 120.00, 'Poetry', '/img/gitanjali.jpg', FALSE),
			('The Hungry Tide', 'hungry-tide', 250.00, 'Fiction', '/img/tide.jpg', TRUE),
			('Sea of Poppies', 'sea-of-poppies', 300.00, 'Fiction', '/img/poppies.jpg', FALSE)
	`)
	require.NoError(t, err)

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO products (title, price, category_name, image_url) VALUES
			('Tagore Poster', 80.00, 'Posters', '/img/poster.jpg'),
			('Poppy Bookmark', 30.00, 'Stationery', '/img/bookmark.jpg')
	`)
	require.NoError(t, err)
}

func TestCatalogRepository(t *testing.T) {
	db := SetupTestDB(t)
	seedCatalog(t, db)

	repo := repository.NewCatalogRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	t.Run("search books matches title case-insensitively", func(t *testing.T) {
		books, err := repo.SearchBooks(ctx, "TIDE", 5)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "The Hungry Tide", books[0].Title)
	})

	t.Run("search books matches category", func(t *testing.T) {
		books, err := repo.SearchBooks(ctx, "fiction", 0)
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("search books honours limit", func(t *testing.T) {
		books, err := repo.SearchBooks(ctx, "fiction", 1)
		require.NoError(t, err)
		assert.Len(t, books, 1)
	})

	t.Run("like metacharacters match literally", func(t *testing.T) {
		books, err := repo.SearchBooks(ctx, "%", 0)
		require.NoError(t, err)
		assert.Empty(t, books)

		books, err = repo.SearchBooks(ctx, "t_de", 0)
		require.NoError(t, err)
		assert.Empty(t, books)

		products, err := repo.SearchProducts(ctx, "%", 0)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("search products", func(t *testing.T) {
		products, err := repo.SearchProducts(ctx, "poppy", 5)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Poppy Bookmark", products[0].Title)
	})

	t.Run("books by category on sale only", func(t *testing.T) {
		books, err := repo.BooksByCategory(ctx, "Fiction", true)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "The Hungry Tide", books[0].Title)
	})

	t.Run("book by slug", func(t *testing.T) {
		book, err := repo.BookBySlug(ctx, "gitanjali")
		require.NoError(t, err)
		require.NotNil(t, book)
		assert.Equal(t, 120.0, book.Price)
	})

	t.Run("missing slug yields nil", func(t *testing.T) {
		book, err := repo.BookBySlug(ctx, "no-such-book")
		require.NoError(t, err)
		assert.Nil(t, book)
	})
}

func TestVerificationRepository(t *testing.T) {
	db := SetupTestDB(t)

	repo := repository.NewVerificationRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	v := &model.PhoneVerification{
		ID:             uuid.New(),
		PhoneNumber:    "+919876543210",
		DeliveryMethod: model.DeliverySMS,
		OTP:            "482913",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, v))

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, v.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "482913", got.OTP)
		assert.False(t, got.Verified)
	})

	t.Run("update code resets created_at", func(t *testing.T) {
		newTime := time.Now().UTC().Add(time.Minute)
		require.NoError(t, repo.UpdateCode(ctx, v.ID, "991122", newTime))

		got, err := repo.GetByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, "991122", got.OTP)
		assert.WithinDuration(t, newTime, got.CreatedAt, time.Second)
	})

	t.Run("mark verified", func(t *testing.T) {
		require.NoError(t, repo.MarkVerified(ctx, v.ID))

		got, err := repo.GetByID(ctx, v.ID)
		require.NoError(t, err)
		assert.True(t, got.Verified)
	})

	t.Run("latest by phone", func(t *testing.T) {
		newer := &model.PhoneVerification{
			ID:             uuid.New(),
			PhoneNumber:    "+919876543210",
			DeliveryMethod: model.DeliveryWhatsApp,
			OTP:            "555555",
			CreatedAt:      time.Now().UTC().Add(2 * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, newer))

		got, err := repo.LatestByPhone(ctx, "+919876543210")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, newer.ID, got.ID)
		assert.Equal(t, model.DeliveryWhatsApp, got.DeliveryMethod)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, v.ID))

		got, err := repo.GetByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update on missing record", func(t *testing.T) {
		err := repo.UpdateCode(ctx, uuid.New(), "000000", time.Now())
		assert.ErrorIs(t, err, model.ErrVerificationNotFound)
	})
}

func newTestOrder() *model.Order {
	now := time.Now().UTC()
	return &model.Order{
		PhoneNumber:   "+919876543210",
		FullName:      "Aritra Dutta",
		Email:         "aritradatt39@gmail.com",
		Address:       "12 College Street",
		City:          "Kolkata",
		State:         "West Bengal",
		PinCode:       "700073",
		DeliveryType:  "standard",
		PaymentMethod: "payu",
		Subtotal:      200,
		Shipping:      49,
		Total:         264,
		Status:        model.OrderPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestOrderRepository(t *testing.T) {
	db := SetupTestDB(t)

	repo := repository.NewOrderRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	order := newTestOrder()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	require.NotZero(t, order.ID)

	items := []model.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ItemType: model.ItemTypeBook, ItemID: 1, Title: "Gitanjali", Price: 100, Quantity: 2, ImageURL: "/img/g.jpg"},
		{ID: uuid.New(), OrderID: order.ID, ItemType: model.ItemTypeAddon, ItemID: 0, Title: "Page Highlighting", Price: 15, Quantity: 1},
	}
	require.NoError(t, repo.CreateOrderItems(ctx, tx, items))
	require.NoError(t, tx.Commit(ctx))

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 264.0, got.Total)
		assert.Equal(t, model.OrderPending, got.Status)
	})

	t.Run("items by order", func(t *testing.T) {
		got, err := repo.ItemsByOrder(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("line totals plus shipping equal order total", func(t *testing.T) {
		got, err := repo.ItemsByOrder(ctx, order.ID)
		require.NoError(t, err)

		sum := 0.0
		for _, item := range got {
			sum += item.Price * float64(item.Quantity)
		}
		assert.Equal(t, order.Total, sum+order.Shipping)
	})

	t.Run("update status", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, order.ID, model.OrderProcessing))

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderProcessing, got.Status)
	})

	t.Run("delete pending skips processing order", func(t *testing.T) {
		deleted, err := repo.DeletePending(ctx, order.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("delete pending removes pending order", func(t *testing.T) {
		pending := newTestOrder()
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.CreateOrder(ctx, tx, pending))
		require.NoError(t, tx.Commit(ctx))

		deleted, err := repo.DeletePending(ctx, pending.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		got, err := repo.GetByID(ctx, pending.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete cascades to items", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, order.ID))

		items, err := repo.ItemsByOrder(ctx, order.ID)
		require.NoError(t, err)
		assert.Empty(t, items)

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update status on missing order", func(t *testing.T) {
		err := repo.UpdateStatus(ctx, 999999, model.OrderProcessing)
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})
}
