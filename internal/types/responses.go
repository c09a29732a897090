package types

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ------------------------------
// Response Types
// ------------------------------

// Response is the unmodified result of one round trip.
type Response struct {
	StatusCode int             `json:"statusCode"`
	Header     http.Header     `json:"-"`
	Body       json.RawMessage `json:"body,omitempty"`
	Duration   time.Duration   `json:"-"`
	RequestID  string          `json:"requestId,omitempty"`
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if r == nil {
		return fmt.Errorf("decode: nil response")
	}
	if len(r.Body) == 0 {
		return fmt.Errorf("decode: empty body (status %d)", r.StatusCode)
	}
	return json.Unmarshal(r.Body, v)
}

// DecodeAs decodes the body of r into a fresh T.
func DecodeAs[T any](r *Response) (T, error) {
	var v T
	err := r.Decode(&v)
	return v, err
}
