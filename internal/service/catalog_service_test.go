package service

import (
	"context"
	"testing"

	"book-bazaar/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchEmptyQuery(t *testing.T) {
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo, zerolog.Nop())

	results, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, results)

	repo.AssertNotCalled(t, "SearchBooks", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchCombinesBooksAndProducts(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("SearchBooks", mock.Anything, "tagore", 0).Return([]model.Book{
		{ID: 1, Title: "Gitanjali", Slug: "gitanjali", Price: 120, ImageURL: "/img/gitanjali.jpg"},
	}, nil)
	repo.On("SearchProducts", mock.Anything, "tagore", 0).Return([]model.Product{
		{ID: 7, Title: "Tagore Poster", Price: 80, ImageURL: "/img/poster.jpg"},
	}, nil)

	svc := NewCatalogService(repo, zerolog.Nop())

	results, err := svc.Search(context.Background(), "tagore")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Book", results[0].Type)
	assert.Equal(t, "120.00", results[0].Price)
	assert.Equal(t, "/books/gitanjali/", results[0].URL)

	assert.Equal(t, "Product", results[1].Type)
	assert.Equal(t, "/product/7/", results[1].URL)
}

func TestSuggestionsShortQuery(t *testing.T) {
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo, zerolog.Nop())

	for _, q := range []string{"", "a", " a ", "  "} {
		results, err := svc.Suggestions(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, results, "query %q should yield no suggestions", q)
	}

	repo.AssertNotCalled(t, "SearchBooks", mock.Anything, mock.Anything, mock.Anything)
}

func TestSuggestionsLimitsAndDedupes(t *testing.T) {
	books := []model.Book{
		{ID: 1, Title: "The Hungry Tide", Slug: "hungry-tide", Price: 250},
		{ID: 2, Title: "Sea of Poppies", Slug: "sea-of-poppies", Price: 300},
	}
	products := []model.Product{
		{ID: 10, Title: "the hungry tide ", Price: 150}, // dupe of a book title
		{ID: 11, Title: "Poppy Bookmark", Price: 30},
	}

	repo := new(MockCatalogRepository)
	repo.On("SearchBooks", mock.Anything, "po", 5).Return(books, nil)
	repo.On("SearchProducts", mock.Anything, "po", 5).Return(products, nil)

	svc := NewCatalogService(repo, zerolog.Nop())

	results, err := svc.Suggestions(context.Background(), "po")
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Books come first, and the product duplicating a book title is dropped.
	assert.Equal(t, "The Hungry Tide", results[0].Title)
	assert.Equal(t, "Sea of Poppies", results[1].Title)
	assert.Equal(t, "Poppy Bookmark", results[2].Title)
	assert.Equal(t, "Product", results[2].Type)
}

func TestSuggestionsQueriesWithLimit(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("SearchBooks", mock.Anything, "history", 5).Return([]model.Book{}, nil)
	repo.On("SearchProducts", mock.Anything, "history", 5).Return([]model.Product{}, nil)

	svc := NewCatalogService(repo, zerolog.Nop())

	results, err := svc.Suggestions(context.Background(), " history ")
	require.NoError(t, err)
	assert.Empty(t, results)

	repo.AssertExpectations(t)
}

func TestBookBySlugNotFound(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("BookBySlug", mock.Anything, "missing").Return(nil, nil)

	svc := NewCatalogService(repo, zerolog.Nop())

	_, err := svc.BookBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestBooksByCategoryNilBecomesEmpty(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("BooksByCategory", mock.Anything, "poetry", true).Return(nil, nil)

	svc := NewCatalogService(repo, zerolog.Nop())

	books, err := svc.BooksByCategory(context.Background(), "poetry", true)
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}
