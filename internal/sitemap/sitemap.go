package sitemap

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"spice-catalog-service/internal/store"
	"spice-catalog-service/internal/view"
)

// Entry is one row of the public site index.
type Entry struct {
	URL             string    `json:"url"`
	LastModified    time.Time `json:"lastModified"`
	ChangeFrequency string    `json:"changeFrequency"`
	Priority        float64   `json:"priority"`
}

// Static pages of the site. The root gets top priority; everything else a
// fixed 0.8. One dynamic entry per active catalog record is appended at
// synthesis time.
var staticPaths = []string{"/", "/about", "/products", "/quality", "/contact"}

const (
	staticChangeFreq  = "weekly"
	dynamicChangeFreq = "daily"
	dynamicPriority   = 0.7

	// The full active catalog fits comfortably in one page of this size.
	catalogPageSize = 100

	cacheKey = "sitemap:routes"
)

// Synthesizer produces the site index: static routes plus one product route
// per active catalog record. Synthesis is allowed a bounded staleness
// window, held in redis; everything else in this service is uncached.
type Synthesizer struct {
	catalog store.CatalogStorer
	baseURL string
	rdb     *redis.Client // nil disables caching
	ttl     time.Duration
	now     func() time.Time
}

// NewSynthesizer creates a Synthesizer. rdb may be nil, in which case every
// call synthesizes fresh.
func NewSynthesizer(catalog store.CatalogStorer, baseURL string, rdb *redis.Client, ttl time.Duration) *Synthesizer {
	return &Synthesizer{
		catalog: catalog,
		baseURL: baseURL,
		rdb:     rdb,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Routes returns the full site index. Upstream failure degrades to the
// static entries alone; this never hard-fails.
func (s *Synthesizer) Routes(ctx context.Context) []Entry {
	if cached, ok := s.fromCache(ctx); ok {
		return cached
	}

	entries := s.staticEntries()
	entries = append(entries, s.productEntries(ctx)...)

	s.toCache(ctx, entries)
	return entries
}

func (s *Synthesizer) staticEntries() []Entry {
	now := s.now()
	entries := make([]Entry, 0, len(staticPaths))
	for _, path := range staticPaths {
		priority := 0.8
		if path == "/" {
			priority = 1.0
		}
		entries = append(entries, Entry{
			URL:             s.baseURL + path,
			LastModified:    now,
			ChangeFrequency: staticChangeFreq,
			Priority:        priority,
		})
	}
	return entries
}

func (s *Synthesizer) productEntries(ctx context.Context) []Entry {
	listing, err := s.catalog.ListProducts(ctx, store.ListProductsParams{
		Page:   1,
		Limit:  catalogPageSize,
		Status: "active",
	})
	if err != nil {
		log.Printf("WARN: sitemap: catalog listing failed, omitting product routes: %v", err)
		return nil
	}
	if listing == nil {
		return nil
	}

	entries := make([]Entry, 0, len(listing.Products))
	for _, rec := range listing.Products {
		slug := view.ProductSlug(rec)
		if slug == "" {
			continue
		}
		lastMod := s.now()
		if rec.UpdatedAt != nil {
			lastMod = *rec.UpdatedAt
		}
		entries = append(entries, Entry{
			URL:             s.baseURL + "/products/" + slug,
			LastModified:    lastMod,
			ChangeFrequency: dynamicChangeFreq,
			Priority:        dynamicPriority,
		})
	}
	return entries
}

func (s *Synthesizer) fromCache(ctx context.Context) ([]Entry, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("WARN: sitemap: cache read failed: %v", err)
		}
		return nil, false
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Printf("WARN: sitemap: discarding malformed cache entry: %v", err)
		return nil, false
	}
	return entries, true
}

func (s *Synthesizer) toCache(ctx context.Context, entries []Entry) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKey, raw, s.ttl).Err(); err != nil {
		log.Printf("WARN: sitemap: cache write failed: %v", err)
	}
}
