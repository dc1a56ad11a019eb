package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"spice-catalog-service/internal/domain"
)

// RemoteStore implements the CatalogStorer, ReferenceStorer and
// InquiryStorer interfaces against the upstream document store's HTTP API.
// Every call has a bounded wait via the client timeout; a timeout is
// reported the same way as any other transport failure.
type RemoteStore struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemoteStore creates a RemoteStore for the given base URL.
func NewRemoteStore(baseURL string, timeout time.Duration) *RemoteStore {
	return &RemoteStore{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- CatalogStorer Implementation ---

func (s *RemoteStore) ListProducts(ctx context.Context, params ListProductsParams) (*domain.ProductListing, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("limit", strconv.Itoa(params.Limit))
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}

	body, status, err := s.get(ctx, "/products", q)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: list-products returned status %d", ErrUpstreamUnavailable, status)
	}

	var listing domain.ProductListing
	ok, err := unwrapInto(body, &listing)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil // store answered but had no listing payload
	}
	return &listing, nil
}

func (s *RemoteStore) GetProduct(ctx context.Context, id string) (*domain.CatalogRecord, error) {
	body, status, err := s.get(ctx, "/products/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		return nil, ErrProductNotFound
	case status != http.StatusOK:
		return nil, fmt.Errorf("%w: get-product returned status %d", ErrUpstreamUnavailable, status)
	}

	var record domain.CatalogRecord
	ok, err := unwrapInto(body, &record)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A clean 200 with success=false is the store's way of reporting a
		// miss for legacy identifiers.
		return nil, ErrProductNotFound
	}
	return &record, nil
}

// --- ReferenceStorer Implementation ---

func (s *RemoteStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := s.listCollection(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *RemoteStore) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	var testimonials []domain.Testimonial
	if err := s.listCollection(ctx, "/testimonials", nil, &testimonials); err != nil {
		return nil, err
	}
	return testimonials, nil
}

func (s *RemoteStore) ListDocumentation(ctx context.Context, status string) ([]domain.DocumentationEntry, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	var records []domain.DocumentationRecord
	if err := s.listCollection(ctx, "/documentation", q, &records); err != nil {
		return nil, err
	}
	// Narrow the store's shape to the public field set.
	entries := make([]domain.DocumentationEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, domain.DocumentationEntry{
			ID:        rec.ID,
			Title:     rec.Title,
			Image:     rec.Image,
			Status:    rec.Status,
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}
	return entries, nil
}

func (s *RemoteStore) GetFlags(ctx context.Context) (domain.FeatureFlags, error) {
	body, status, err := s.get(ctx, "/flags", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: list-flags returned status %d", ErrUpstreamUnavailable, status)
	}
	data, ok, err := unwrapEnvelope(body)
	if err != nil {
		return nil, err
	}
	if !ok {
		return domain.FeatureFlags("{}"), nil
	}
	return domain.FeatureFlags(data), nil
}

// --- InquiryStorer Implementation ---

func (s *RemoteStore) CreateInquiry(ctx context.Context, inquiry *domain.Inquiry) (*domain.CreatedInquiry, error) {
	payload, err := json.Marshal(inquiry)
	if err != nil {
		return nil, fmt.Errorf("store: CreateInquiry failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/inquiries", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("store: CreateInquiry failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading create-enquiry response: %v", ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Proxy the store's own rejection verbatim, status code included.
		return nil, &StatusError{Code: resp.StatusCode, Message: upstreamMessage(body)}
	}

	var created domain.CreatedInquiry
	ok, err := unwrapInto(body, &created)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: create-enquiry succeeded without a payload", ErrUpstreamUnavailable)
	}
	return &created, nil
}

// --- Helpers ---

// get performs a GET against the store and returns the raw body and status.
// Transport failures (including timeouts) map to ErrUpstreamUnavailable.
func (s *RemoteStore) get(ctx context.Context, path string, q url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("store: failed to build request for %s: %w", path, err)
	}
	if len(q) > 0 {
		req.URL.RawQuery = q.Encode()
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: reading response for %s: %v", ErrUpstreamUnavailable, path, err)
	}
	return body, resp.StatusCode, nil
}

// listCollection fetches one auxiliary collection and decodes its payload
// into dst. An empty envelope leaves dst untouched, which callers surface
// as an empty slice.
func (s *RemoteStore) listCollection(ctx context.Context, path string, q url.Values, dst interface{}) error {
	body, status, err := s.get(ctx, path, q)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: %s returned status %d", ErrUpstreamUnavailable, path, status)
	}
	if _, err := unwrapInto(body, dst); err != nil {
		return err
	}
	return nil
}

// upstreamMessage extracts the store's error message from a rejection body,
// falling back to the raw body when it is not envelope-shaped.
func upstreamMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return string(body)
}
