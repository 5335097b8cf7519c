package hibp

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when the API answers 404 for a resource where
// "no record" is not a normal outcome (e.g. a named breach). Account and
// domain lookups translate it to an empty result instead.
var ErrNotFound = errors.New("hibp: not found")

// APIError is any non-success response other than 404 and 429.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("hibp: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("hibp: unexpected status %d: %s", e.StatusCode, e.Body)
}

// RateLimitError reports a 429 from the API together with the server's
// suggested wait. The client never retries on its own.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("hibp: rate limited, retry after %s", e.RetryAfter)
}
