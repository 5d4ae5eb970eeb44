package repository

import (
	"context"
	"time"

	"book-bazaar/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CatalogRepository defines read access to the book and product catalogue.
type CatalogRepository interface {
	// SearchBooks returns books whose title or category contains the query,
	// case-insensitively, in insertion order. limit <= 0 means no limit.
	SearchBooks(ctx context.Context, query string, limit int) ([]model.Book, error)

	// SearchProducts is the product-side counterpart of SearchBooks.
	SearchProducts(ctx context.Context, query string, limit int) ([]model.Product, error)

	// BooksByCategory returns books in a category ordered by title,
	// optionally restricted to those on sale.
	BooksByCategory(ctx context.Context, category string, onSaleOnly bool) ([]model.Book, error)

	// BookBySlug retrieves a single book by slug; nil when absent.
	BookBySlug(ctx context.Context, slug string) (*model.Book, error)

	// BookByID retrieves a single book by id; nil when absent.
	BookByID(ctx context.Context, id int64) (*model.Book, error)
}

// VerificationRepository defines data access for OTP verification records.
type VerificationRepository interface {
	// Create inserts a new verification record.
	Create(ctx context.Context, v *model.PhoneVerification) error

	// GetByID retrieves a verification record; nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.PhoneVerification, error)

	// UpdateCode overwrites the code and creation time on an existing
	// record, leaving the verified flag untouched.
	UpdateCode(ctx context.Context, id uuid.UUID, otp string, createdAt time.Time) error

	// MarkVerified flips the verified flag.
	MarkVerified(ctx context.Context, id uuid.UUID) error

	// Delete removes a verification record.
	Delete(ctx context.Context, id uuid.UUID) error

	// LatestByPhone returns the most recently created record for a phone
	// number; nil when none exists.
	LatestByPhone(ctx context.Context, phone string) (*model.PhoneVerification, error)
}

// OrderRepository defines data access for orders and their line items.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction and
	// populates order.ID from the database.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID; nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// ItemsByOrder retrieves the line items of an order.
	ItemsByOrder(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	// UpdateStatus transitions an order to the given status.
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error

	// Delete removes an order and, via cascade, its items.
	Delete(ctx context.Context, id int64) error

	// DeletePending removes an order only while it is still pending.
	// Returns false when no pending order matched.
	DeletePending(ctx context.Context, id int64) (bool, error)
}
