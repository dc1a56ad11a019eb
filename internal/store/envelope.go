package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the upstream store's generic response wrapper. Every endpoint
// the store exposes answers in this shape; nothing outside this file should
// know that.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// unwrapEnvelope decodes an upstream response body and returns the inner
// payload. The second return is false when the store reported failure or
// sent no payload; callers choose their own fallback shape, an empty
// envelope is not an error here.
func unwrapEnvelope(body []byte) (json.RawMessage, bool, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, false, fmt.Errorf("store: malformed upstream envelope: %w", err)
	}
	if !env.Success || len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil, false, nil
	}
	return env.Data, true, nil
}

// unwrapInto unwraps the envelope and decodes the payload into dst. Returns
// false (and leaves dst untouched) on an empty envelope.
func unwrapInto(body []byte, dst interface{}) (bool, error) {
	data, ok, err := unwrapEnvelope(body)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("store: failed to decode upstream payload: %w", err)
	}
	return true, nil
}
