package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spice-catalog-service/internal/domain"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *RemoteStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewRemoteStore(server.URL, 5*time.Second)
}

func TestRemoteStore_ListProducts_ForwardsQueryParams(t *testing.T) {
	var gotQuery map[string]string
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		gotQuery = map[string]string{
			"page":     r.URL.Query().Get("page"),
			"limit":    r.URL.Query().Get("limit"),
			"status":   r.URL.Query().Get("status"),
			"category": r.URL.Query().Get("category"),
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"products":   []map[string]interface{}{{"_id": "p1", "title": "Clove"}},
				"pagination": map[string]int{"totalItems": 1, "totalPages": 1, "page": 2, "limit": 9},
			},
		})
	})

	listing, err := s.ListProducts(context.Background(), ListProductsParams{
		Page: 2, Limit: 9, Status: "active", Category: "whole-spices",
	})
	require.NoError(t, err)
	require.NotNil(t, listing)

	assert.Equal(t, "2", gotQuery["page"])
	assert.Equal(t, "9", gotQuery["limit"])
	assert.Equal(t, "active", gotQuery["status"])
	assert.Equal(t, "whole-spices", gotQuery["category"])

	require.Len(t, listing.Products, 1)
	assert.Equal(t, "Clove", listing.Products[0].Title)
	assert.Equal(t, 1, listing.Pagination.TotalItems)
	assert.Equal(t, 2, listing.Pagination.Page)
}

func TestRemoteStore_ListProducts_OmitsEmptyCategory(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("category"), "empty category must not be forwarded")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": map[string]interface{}{"products": []interface{}{}}})
	})

	_, err := s.ListProducts(context.Background(), ListProductsParams{Page: 1, Limit: 9, Status: "active"})
	require.NoError(t, err)
}

func TestRemoteStore_ListProducts_EmptyEnvelopeIsTypedAbsence(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "no catalog"})
	})

	listing, err := s.ListProducts(context.Background(), ListProductsParams{Page: 1, Limit: 9})
	require.NoError(t, err)
	assert.Nil(t, listing)
}

func TestRemoteStore_ListProducts_Non2xxIsUnavailable(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := s.ListProducts(context.Background(), ListProductsParams{Page: 1, Limit: 9})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestRemoteStore_ListProducts_NetworkFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on
	s := NewRemoteStore(server.URL, time.Second)

	_, err := s.ListProducts(context.Background(), ListProductsParams{Page: 1, Limit: 9})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestRemoteStore_GetProduct_Found(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/p42", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"_id": "p42", "title": "Star Anise", "origin": "Kerala"},
		})
	})

	rec, err := s.GetProduct(context.Background(), "p42")
	require.NoError(t, err)
	assert.Equal(t, "p42", rec.ID)
	assert.Equal(t, "Star Anise", rec.Title)
	assert.Equal(t, "Kerala", rec.Origin)
}

func TestRemoteStore_GetProduct_CleanMissIsNotFound(t *testing.T) {
	t.Run("http 404", func(t *testing.T) {
		s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := s.GetProduct(context.Background(), "missing-id")
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.False(t, errors.Is(err, ErrUpstreamUnavailable), "a clean miss is not an availability failure")
	})

	t.Run("200 with success=false", func(t *testing.T) {
		s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Product not found"})
		})
		_, err := s.GetProduct(context.Background(), "missing-id")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRemoteStore_GetProduct_ServerErrorIsUnavailable(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := s.GetProduct(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.False(t, errors.Is(err, ErrProductNotFound))
}

func TestRemoteStore_ListDocumentation_ForwardsStatus(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/documentation", r.URL.Path)
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    []map[string]interface{}{{"_id": "d1", "title": "FSSAI License", "status": "active"}},
		})
	})

	entries, err := s.ListDocumentation(context.Background(), "active")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "d1", entries[0].ID, "identifier is carried over from the store's _id field")
	assert.Equal(t, "FSSAI License", entries[0].Title)
}

func TestRemoteStore_ListDocumentation_NarrowsStoreShape(t *testing.T) {
	// The store answers in its own document shape; only the fixed public
	// field set survives the narrowing.
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": []map[string]interface{}{{
				"_id":         "d9",
				"title":       "Organic Certification",
				"image":       "https://cdn.example.com/organic.jpg",
				"status":      "active",
				"description": "internal reviewer notes",
				"uploadedBy":  "admin",
			}},
		})
	})

	entries, err := s.ListDocumentation(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "d9", entries[0].ID)
	assert.Equal(t, "Organic Certification", entries[0].Title)
	assert.Equal(t, "https://cdn.example.com/organic.jpg", entries[0].Image)
	assert.Equal(t, "active", entries[0].Status)

	public, err := json.Marshal(entries[0])
	require.NoError(t, err)
	assert.NotContains(t, string(public), "internal reviewer notes")
	assert.NotContains(t, string(public), "uploadedBy")
}

func TestRemoteStore_GetFlags_PassthroughAndDefault(t *testing.T) {
	t.Run("passthrough", func(t *testing.T) {
		s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    map[string]bool{"showTestimonials": true},
			})
		})
		flags, err := s.GetFlags(context.Background())
		require.NoError(t, err)
		assert.JSONEq(t, `{"showTestimonials": true}`, string(flags))
	})

	t.Run("empty envelope yields empty object", func(t *testing.T) {
		s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
		})
		flags, err := s.GetFlags(context.Background())
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(flags))
	})
}

func TestRemoteStore_CreateInquiry_Success(t *testing.T) {
	var gotBody domain.Inquiry
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/inquiries", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"_id": "inq-1", "name": gotBody.Name, "email": gotBody.Email},
		})
	})

	created, err := s.CreateInquiry(context.Background(), &domain.Inquiry{
		Name: "Asha", Email: "asha@example.com", Message: "Bulk pricing?", Type: "buyer",
	})
	require.NoError(t, err)
	assert.Equal(t, "inq-1", created.ID)
	assert.Equal(t, "Asha", gotBody.Name, "validated inquiry is forwarded as-is")
}

func TestRemoteStore_CreateInquiry_RejectionIsProxied(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "email domain is blocked"})
	})

	_, err := s.CreateInquiry(context.Background(), &domain.Inquiry{
		Name: "Asha", Email: "asha@blocked.test", Message: "hi",
	})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.Code)
	assert.Equal(t, "email domain is blocked", statusErr.Message, "upstream message passed through verbatim")
}
