package service

import (
	"context"
	"fmt"
	"strings"

	"book-bazaar/internal/model"
	"book-bazaar/internal/repository"

	"github.com/rs/zerolog"
)

const suggestionLimit = 5

// catalogService implements CatalogService.
type catalogService struct {
	catalogRepo repository.CatalogRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(catalogRepo repository.CatalogRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

func bookResult(b model.Book) model.SearchResult {
	return model.SearchResult{
		Title: b.Title,
		Price: fmt.Sprintf("%.2f", b.Price),
		Image: b.ImageURL,
		URL:   fmt.Sprintf("/books/%s/", b.Slug),
		Type:  "Book",
	}
}

func productResult(p model.Product) model.SearchResult {
	return model.SearchResult{
		Title: p.Title,
		Price: fmt.Sprintf("%.2f", p.Price),
		Image: p.ImageURL,
		URL:   fmt.Sprintf("/product/%d/", p.ID),
		Type:  "Product",
	}
}

// Search returns full search results for a free-text query.
func (s *catalogService) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.SearchResult{}, nil
	}

	books, err := s.catalogRepo.SearchBooks(ctx, query, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}

	products, err := s.catalogRepo.SearchProducts(ctx, query, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	results := make([]model.SearchResult, 0, len(books)+len(products))
	for _, b := range books {
		results = append(results, bookResult(b))
	}
	for _, p := range products {
		results = append(results, productResult(p))
	}

	s.logger.Debug().Str("query", query).Int("results", len(results)).Msg("search completed")

	return results, nil
}

// Suggestions returns up to five book and five product suggestions,
// deduplicated by lower-cased trimmed title with books winning ties.
func (s *catalogService) Suggestions(ctx context.Context, query string) ([]model.SearchResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []model.SearchResult{}, nil
	}

	books, err := s.catalogRepo.SearchBooks(ctx, query, suggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}

	products, err := s.catalogRepo.SearchProducts(ctx, query, suggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	seen := make(map[string]bool, len(books)+len(products))
	results := make([]model.SearchResult, 0, len(books)+len(products))

	for _, b := range books {
		key := strings.ToLower(strings.TrimSpace(b.Title))
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, bookResult(b))
	}

	for _, p := range products {
		key := strings.ToLower(strings.TrimSpace(p.Title))
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, productResult(p))
	}

	return results, nil
}

// BooksByCategory lists a category shelf.
func (s *catalogService) BooksByCategory(ctx context.Context, category string, onSaleOnly bool) ([]model.Book, error) {
	books, err := s.catalogRepo.BooksByCategory(ctx, category, onSaleOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	if books == nil {
		books = []model.Book{}
	}
	return books, nil
}

// BookBySlug retrieves a single book page.
func (s *catalogService) BookBySlug(ctx context.Context, slug string) (*model.Book, error) {
	book, err := s.catalogRepo.BookBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve book: %w", err)
	}
	if book == nil {
		return nil, model.ErrBookNotFound
	}
	return book, nil
}
