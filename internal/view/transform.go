package view

import (
	"unicode"

	"spice-catalog-service/internal/domain"
)

// Default values applied when an upstream record omits the field.
const defaultRegion = "India"

// TransformProduct derives the public ProductView from a raw upstream
// record. It is the single transformation used by both the listing and the
// single-product paths, so the default policy cannot drift between them.
// It is total: a completely empty record still yields a valid view.
func TransformProduct(rec domain.CatalogRecord) domain.ProductView {
	region := rec.Origin
	if region == "" {
		region = defaultRegion
	}

	taste := rec.Characteristics
	if taste == "" {
		taste = rec.Usage
	}

	tags := []string{}
	if rec.Category != "" {
		tags = append(tags, capitalize(rec.Category))
	}

	return domain.ProductView{
		ID:          rec.ID,
		Name:        displayTitle(rec),
		Description: rec.Description,
		Region:      region,
		Taste:       taste,
		Image:       rec.DisplayPhoto,
		Tags:        tags,
		Story:       rec.Background,
		Category:    rec.Category,
		Subcategory: rec.Subcategory,
	}
}

// displayTitle prefers the record's title and falls back to the legacy
// name field written by older admin tooling.
func displayTitle(rec domain.CatalogRecord) string {
	if rec.Title != "" {
		return rec.Title
	}
	return rec.Name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// ProductSlug is the slug used for a record's public detail URL, derived
// from the same display title the Transformer uses.
func ProductSlug(rec domain.CatalogRecord) string {
	return Slugify(displayTitle(rec))
}
