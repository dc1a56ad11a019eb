package domain

import "time"

// CatalogRecord is the raw product document as the upstream store returns it.
// Every field is optional at this boundary: the store's admin tooling has
// written partial documents in the past, so absence is represented by the
// zero value (empty string, nil slice, nil time) rather than an error.
type CatalogRecord struct {
	ID              string     `json:"_id"`
	Title           string     `json:"title"`
	Name            string     `json:"name"` // legacy alternate of Title, kept for older documents
	Description     string     `json:"description"`
	Origin          string     `json:"origin"`
	Background      string     `json:"background"`
	Usage           string     `json:"usage"`
	Characteristics string     `json:"characteristics"`
	DisplayPhoto    string     `json:"displayPhoto"`
	Photos          []string   `json:"photos"`
	Category        string     `json:"category"`
	Subcategory     string     `json:"subcategory"`
	Status          string     `json:"status"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// ProductView is the public product shape served to the catalog site.
// It is derived fresh from a CatalogRecord on every request and never
// persisted. All fields are total: a partial upstream record maps to the
// documented defaults, never to an error.
type ProductView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Region      string   `json:"region"`
	Taste       string   `json:"taste"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Story       string   `json:"story"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
}

// Pagination is the upstream store's paging metadata, passed through to
// listing responses unmodified.
type Pagination struct {
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page,omitempty"`
	Limit      int `json:"limit,omitempty"`
}

// ProductPage is one page of the public catalog listing.
type ProductPage struct {
	Products   []ProductView `json:"products"`
	Pagination Pagination    `json:"pagination"`
}

// ProductListing is the upstream payload for a listing query: raw records
// plus the store's paging metadata.
type ProductListing struct {
	Products   []CatalogRecord `json:"products"`
	Pagination Pagination      `json:"pagination"`
}
