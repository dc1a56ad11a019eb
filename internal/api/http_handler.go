package api

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"spice-catalog-service/internal/domain"
	"spice-catalog-service/internal/sitemap"
	"spice-catalog-service/internal/store"
	"spice-catalog-service/internal/view"
)

// Listing defaults for the public catalog grid.
const (
	defaultListingLimit = 9
	maxListingLimit     = 100
	defaultStatus       = "active"

	// Sentinel category value meaning "no category filter".
	categoryAll = "all"
)

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	catalogStore   store.CatalogStorer
	referenceStore store.ReferenceStorer
	inquiryStore   store.InquiryStorer
	routeIndex     *sitemap.Synthesizer
	validate       *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(cs store.CatalogStorer, rs store.ReferenceStorer, is store.InquiryStorer, ri *sitemap.Synthesizer) *HTTPHandler {
	return &HTTPHandler{
		catalogStore:   cs,
		referenceStore: rs,
		inquiryStore:   is,
		routeIndex:     ri,
		validate:       validator.New(),
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"` // per-field validation messages
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("ERROR: Failed to encode JSON response: %v", err)
			http.Error(w, `{"error": "Internal server error during JSON encoding"}`, http.StatusInternalServerError)
		}
	}
}

// --- Catalog Handlers ---

// ListProducts serves the public catalog grid. Upstream failure degrades to
// an empty page with a 200; the public listing never hard-fails.
func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	qParams := r.URL.Query()

	limit, err := strconv.Atoi(qParams.Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultListingLimit
	}
	if limit > maxListingLimit {
		limit = maxListingLimit
	}
	page, err := strconv.Atoi(qParams.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	status := qParams.Get("status")
	if status == "" {
		status = defaultStatus
	}

	params := store.ListProductsParams{
		Page:   page,
		Limit:  limit,
		Status: status,
	}
	// "all" is the grid's sentinel for no category filter and must not
	// reach the upstream store.
	if category := qParams.Get("category"); category != "" && category != categoryAll {
		params.Category = category
	}

	listing, err := h.catalogStore.ListProducts(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: ListProducts upstream query failed: %v", err)
		respondWithJSON(w, http.StatusOK, emptyProductPage())
		return
	}
	if listing == nil {
		respondWithJSON(w, http.StatusOK, emptyProductPage())
		return
	}

	products := make([]domain.ProductView, 0, len(listing.Products))
	for _, rec := range listing.Products {
		products = append(products, view.TransformProduct(rec))
	}

	respondWithJSON(w, http.StatusOK, domain.ProductPage{
		Products:   products,
		Pagination: listing.Pagination,
	})
}

func emptyProductPage() domain.ProductPage {
	return domain.ProductPage{
		Products:   []domain.ProductView{},
		Pagination: domain.Pagination{TotalItems: 0, TotalPages: 0},
	}
}

// GetProduct resolves a single catalog record by identifier. A clean miss
// is a 404; the store being unreachable is a 503, never conflated.
func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing product ID")
		return
	}

	record, err := h.catalogStore.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
			return
		}
		log.Printf("ERROR: GetProduct upstream fetch for ID %s failed: %v", id, err)
		respondWithError(w, http.StatusServiceUnavailable, "Catalog temporarily unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, view.TransformProduct(*record))
}

// --- Reference-Data Handlers ---

// ListCategories passes the category collection through; on failure the
// body is an empty array but the status is a client-visible 500.
func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.referenceStore.ListCategories(r.Context())
	if err != nil {
		log.Printf("ERROR: ListCategories upstream query failed: %v", err)
		respondWithJSON(w, http.StatusInternalServerError, []domain.Category{})
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	respondWithJSON(w, http.StatusOK, categories)
}

// envelopeResponse mirrors the upstream envelope convention for the two
// endpoints that expose it directly.
type envelopeResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func (h *HTTPHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.referenceStore.ListTestimonials(r.Context())
	if err != nil {
		log.Printf("ERROR: ListTestimonials upstream query failed: %v", err)
		respondWithJSON(w, http.StatusInternalServerError, envelopeResponse{
			Success: false,
			Message: "Failed to fetch testimonials",
		})
		return
	}
	if testimonials == nil {
		testimonials = []domain.Testimonial{}
	}
	respondWithJSON(w, http.StatusOK, envelopeResponse{Success: true, Data: testimonials})
}

func (h *HTTPHandler) GetFlags(w http.ResponseWriter, r *http.Request) {
	flags, err := h.referenceStore.GetFlags(r.Context())
	if err != nil {
		log.Printf("ERROR: GetFlags upstream query failed: %v", err)
		respondWithJSON(w, http.StatusInternalServerError, envelopeResponse{
			Success: false,
			Message: "Failed to fetch feature flags",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, envelopeResponse{Success: true, Data: flags})
}

func (h *HTTPHandler) ListDocumentation(w http.ResponseWriter, r *http.Request) {
	entries, err := h.referenceStore.ListDocumentation(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		log.Printf("ERROR: ListDocumentation upstream query failed: %v", err)
		respondWithJSON(w, http.StatusInternalServerError, []domain.DocumentationEntry{})
		return
	}
	if entries == nil {
		entries = []domain.DocumentationEntry{}
	}
	respondWithJSON(w, http.StatusOK, entries)
}

// --- Enquiry Intake ---

// CreateInquiry validates an inbound submission against the Inquiry schema
// and forwards it to the upstream store. Validation failure never reaches
// storage; an upstream rejection is proxied with its original status and
// message.
func (h *HTTPHandler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var inquiry domain.Inquiry
	if err := json.NewDecoder(r.Body).Decode(&inquiry); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if inquiry.Type == "" {
		inquiry.Type = "general"
	}

	if err := h.validate.Struct(inquiry); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			respondWithJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "Validation failed",
				Details: validationMessages(verrs),
			})
			return
		}
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	inquiry.Reference = uuid.NewString()

	created, err := h.inquiryStore.CreateInquiry(r.Context(), &inquiry)
	if err != nil {
		var statusErr *store.StatusError
		if errors.As(err, &statusErr) {
			respondWithError(w, statusErr.Code, statusErr.Message)
			return
		}
		log.Printf("ERROR: CreateInquiry store operation failed: %v", err)
		if errors.Is(err, store.ErrUpstreamUnavailable) {
			respondWithError(w, http.StatusServiceUnavailable, "Failed to submit inquiry: storage unavailable")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to submit inquiry")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func validationMessages(verrs validator.ValidationErrors) []string {
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()))
	}
	return messages
}

// --- Site Index ---

// sitemap.xml shapes per the sitemaps.org protocol.
type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// GetSitemap renders the synthesized route index as sitemap XML.
func (h *HTTPHandler) GetSitemap(w http.ResponseWriter, r *http.Request) {
	entries := h.routeIndex.Routes(r.Context())

	urlSet := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, 0, len(entries)),
	}
	for _, e := range entries {
		urlSet.URLs = append(urlSet.URLs, sitemapURL{
			Loc:        e.URL,
			LastMod:    e.LastModified.UTC().Format(time.RFC3339),
			ChangeFreq: e.ChangeFrequency,
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		})
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return
	}
	if err := xml.NewEncoder(w).Encode(urlSet); err != nil {
		log.Printf("ERROR: Failed to encode sitemap XML: %v", err)
	}
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/{productId}", h.GetProduct)
		})
		r.Get("/categories", h.ListCategories)
		r.Get("/testimonials", h.ListTestimonials)
		r.Get("/documentation", h.ListDocumentation)
		r.Get("/flags", h.GetFlags)
		r.Post("/inquiries", h.CreateInquiry)
	})

	r.Get("/sitemap.xml", h.GetSitemap)
}
