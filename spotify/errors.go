package spotify

import (
	"fmt"
	"net/http"
	"time"
)

// Sentinel errors for each failure class. Every non-2xx response
// surfaces as an [*APIError] that unwraps to one of these, so callers
// can branch with errors.Is without inspecting status codes.
var (
	// ErrInvalidInput indicates a request rejected before it was sent,
	// such as an oversized ID batch or an empty required argument.
	ErrInvalidInput = fmt.Errorf("invalid input")

	// ErrAuthFailed indicates a token could not be acquired or renewed.
	ErrAuthFailed = fmt.Errorf("authentication failed")

	// ErrBadRequest corresponds to status 400.
	ErrBadRequest = fmt.Errorf("bad request")

	// ErrUnauthorized corresponds to status 401. The token is missing,
	// expired beyond renewal, or lacks the account's consent.
	ErrUnauthorized = fmt.Errorf("unauthorized")

	// ErrForbidden corresponds to status 403. The token is valid but
	// the account may not perform the operation.
	ErrForbidden = fmt.Errorf("forbidden")

	// ErrNotFound corresponds to status 404.
	ErrNotFound = fmt.Errorf("not found")

	// ErrRequestTooLarge corresponds to status 413.
	ErrRequestTooLarge = fmt.Errorf("request entity too large")

	// ErrRateLimited corresponds to status 429 after retries were
	// exhausted. The APIError carries the delay the service asked for.
	ErrRateLimited = fmt.Errorf("rate limited")

	// ErrServer corresponds to any 5xx status after retries were
	// exhausted.
	ErrServer = fmt.Errorf("server error")
)

// APIError is a non-2xx response from the service, carrying the status
// code and the message from the error envelope when one was present.
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int

	// Message is the human-readable reason reported by the service.
	Message string

	// RetryAfter is the delay requested via the Retry-After header.
	// Populated only on 429 responses.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("spotify: status %d", e.Status)
	}
	return fmt.Sprintf("spotify: status %d: %s", e.Status, e.Message)
}

// Unwrap maps the status code onto its sentinel class.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusRequestEntityTooLarge:
		return ErrRequestTooLarge
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	if e.Status >= 500 {
		return ErrServer
	}
	return nil
}
