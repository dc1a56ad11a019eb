package domain

import (
	"encoding/json"
	"time"
)

// Category is an upstream taxonomy document. The slug is derived from the
// name by the store before persistence; it is passed through verbatim here.
type Category struct {
	ID            string     `json:"_id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Subcategories []string   `json:"subcategories"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// Testimonial is a customer quote shown on the public site.
type Testimonial struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Location  string     `json:"location"`
	Rating    int        `json:"rating"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// DocumentationRecord is the raw certification/compliance document as the
// upstream store returns it, in the store's own shape (identifier under
// `_id`, like every other collection).
type DocumentationRecord struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Status      string     `json:"status"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// DocumentationEntry is the narrowed public shape of a documentation
// record. The upstream document carries more fields; only these are
// exposed.
type DocumentationEntry struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Image     string     `json:"image"`
	Status    string     `json:"status"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FeatureFlags is the upstream flags collection, passed through untouched.
// Kept as raw JSON because the flag set is owned by the store and changes
// without coordination with this service.
type FeatureFlags = json.RawMessage
