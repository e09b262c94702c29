package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"trackthething/internal/domain"
)

// DefaultMaxBodyBytes is the body cap used when a handler passes limit <= 0
const DefaultMaxBodyBytes = 10 << 20

// ParseJSON decodes JSON from the request body into the given destination.
// The body is capped at limit bytes; exceeding it returns domain.ErrTooLarge,
// malformed JSON returns domain.ErrValidation.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}, limit int64) error {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	// Requires w for proper 413 handling by net/http
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrTooLarge, maxErr.Limit)
		}
		return fmt.Errorf("%w: invalid JSON: %v", domain.ErrValidation, err)
	}

	return nil
}
