package model

import "time"

// Book represents a book in the catalogue. Catalog rows are read-only from
// this service's perspective; the admin side owns them.
type Book struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Slug      string    `json:"slug" db:"slug"`
	Price     float64   `json:"price" db:"price"`
	Category  string    `json:"category" db:"category"`
	ImageURL  string    `json:"image" db:"image_url"`
	OnSale    bool      `json:"on_sale" db:"on_sale"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Product represents a non-book catalogue product.
type Product struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Price     float64   `json:"price" db:"price"`
	Category  string    `json:"category" db:"category_name"`
	ImageURL  string    `json:"image" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SearchResult is the wire shape shared by search and autocomplete.
// Price is serialised as a string, matching the storefront contract.
type SearchResult struct {
	Title string `json:"title"`
	Price string `json:"price"`
	Image string `json:"image"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}
