package store

import (
	"errors"
	"fmt"
)

// Predefined errors for upstream store operations. Handlers map these with
// errors.Is: a clean single-record miss must stay distinguishable from the
// store being unreachable, because they produce different status codes.
var (
	ErrProductNotFound     = errors.New("store: product not found")
	ErrUpstreamUnavailable = errors.New("store: upstream store unavailable")
)

// StatusError carries an upstream rejection through to the caller verbatim.
// Used for write paths, where the store's own validation message and status
// code are proxied rather than reinterpreted.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("store: upstream rejected request (status %d): %s", e.Code, e.Message)
}
