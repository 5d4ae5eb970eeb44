package repository

import (
	"context"
	"fmt"
	"strings"

	"book-bazaar/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// catalogRepository implements CatalogRepository using PostgreSQL.
type catalogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCatalogRepository creates a new PostgreSQL-backed catalogue repository.
func NewCatalogRepository(pool *pgxpool.Pool, logger zerolog.Logger) CatalogRepository {
	return &catalogRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

// likeEscaper neutralises LIKE metacharacters so user input only ever
// matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchBooks returns books matching the query on title or category.
func (r *catalogRepository) SearchBooks(ctx context.Context, query string, limit int) ([]model.Book, error) {
	sql := `
		SELECT id, title, slug, price, category, image_url, on_sale, created_at
		FROM books
		WHERE title ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%'
		ORDER BY id
	`
	args := []any{likeEscaper.Replace(query)}
	if limit > 0 {
		sql += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search books")
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// SearchProducts returns products matching the query on title or category.
func (r *catalogRepository) SearchProducts(ctx context.Context, query string, limit int) ([]model.Product, error) {
	sql := `
		SELECT id, title, price, category_name, image_url, created_at
		FROM products
		WHERE title ILIKE '%' || $1 || '%' OR category_name ILIKE '%' || $1 || '%'
		ORDER BY id
	`
	args := []any{likeEscaper.Replace(query)}
	if limit > 0 {
		sql += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Title, &p.Price, &p.Category, &p.ImageURL, &p.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// BooksByCategory returns books in a category ordered by title.
func (r *catalogRepository) BooksByCategory(ctx context.Context, category string, onSaleOnly bool) ([]model.Book, error) {
	sql := `
		SELECT id, title, slug, price, category, image_url, on_sale, created_at
		FROM books
		WHERE category = $1
	`
	if onSaleOnly {
		sql += " AND on_sale"
	}
	sql += " ORDER BY title"

	rows, err := r.pool.Query(ctx, sql, category)
	if err != nil {
		r.logger.Error().Err(err).Str("category", category).Msg("failed to query books by category")
		return nil, fmt.Errorf("failed to query books by category: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// BookBySlug retrieves a single book by slug.
func (r *catalogRepository) BookBySlug(ctx context.Context, slug string) (*model.Book, error) {
	sql := `
		SELECT id, title, slug, price, category, image_url, on_sale, created_at
		FROM books
		WHERE slug = $1
	`

	var b model.Book
	err := r.pool.QueryRow(ctx, sql, slug).Scan(
		&b.ID, &b.Title, &b.Slug, &b.Price, &b.Category, &b.ImageURL, &b.OnSale, &b.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("slug", slug).Msg("book not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query book")
		return nil, fmt.Errorf("failed to query book: %w", err)
	}

	return &b, nil
}

// BookByID retrieves a single book by id.
func (r *catalogRepository) BookByID(ctx context.Context, id int64) (*model.Book, error) {
	sql := `
		SELECT id, title, slug, price, category, image_url, on_sale, created_at
		FROM books
		WHERE id = $1
	`

	var b model.Book
	err := r.pool.QueryRow(ctx, sql, id).Scan(
		&b.ID, &b.Title, &b.Slug, &b.Price, &b.Category, &b.ImageURL, &b.OnSale, &b.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("book_id", id).Msg("book not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("book_id", id).Msg("failed to query book")
		return nil, fmt.Errorf("failed to query book: %w", err)
	}

	return &b, nil
}

// scanBooks collects book rows, surfacing scan and iteration errors.
func scanBooks(rows pgx.Rows) ([]model.Book, error) {
	var books []model.Book
	for rows.Next() {
		var b model.Book
		err := rows.Scan(&b.ID, &b.Title, &b.Slug, &b.Price, &b.Category, &b.ImageURL, &b.OnSale, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}
