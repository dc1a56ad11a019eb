package store

import (
	"context"

	"spice-catalog-service/internal/domain"
)

// ListProductsParams holds parameters for listing catalog records.
// Category is forwarded to the store only when set; the handler layer is
// responsible for dropping the "all" sentinel before it reaches here.
type ListProductsParams struct {
	Page     int
	Limit    int
	Status   string
	Category string
}

// CatalogStorer defines the upstream catalog read operations.
type CatalogStorer interface {
	// ListProducts returns one page of raw records plus the store's paging
	// metadata. A nil listing with a nil error means the store answered but
	// had no payload; callers fall back to an empty page.
	ListProducts(ctx context.Context, params ListProductsParams) (*domain.ProductListing, error)
	GetProduct(ctx context.Context, id string) (*domain.CatalogRecord, error)
}

// ReferenceStorer defines the auxiliary collection reads (categories,
// testimonials, documentation, feature flags).
type ReferenceStorer interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListTestimonials(ctx context.Context) ([]domain.Testimonial, error)
	ListDocumentation(ctx context.Context, status string) ([]domain.DocumentationEntry, error)
	GetFlags(ctx context.Context) (domain.FeatureFlags, error)
}

// InquiryStorer defines the enquiry write operation.
type InquiryStorer interface {
	CreateInquiry(ctx context.Context, inquiry *domain.Inquiry) (*domain.CreatedInquiry, error)
}
