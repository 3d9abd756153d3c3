package generator

import (
	"fmt"
	"net/http"
)

// StatusError marks a provider error that carried an HTTP status. Backends
// wrap their SDK errors into this type so the gateway can classify failures
// without knowing which SDK produced them.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api error: %d - %s", e.Code, e.Message)
}

func NewStatusError(code int, message string) *StatusError {
	return &StatusError{Code: code, Message: message}
}

func (e *StatusError) rateLimited() bool {
	return e.Code == http.StatusTooManyRequests
}

// TransportFailure is returned after the retry budget is exhausted on
// network-level failures.
type TransportFailure struct {
	Attempts int
	Last     error
}

func (e *TransportFailure) Error() string {
	return fmt.Sprintf("transport failure after %d attempts: %v", e.Attempts, e.Last)
}

func (e *TransportFailure) Unwrap() error { return e.Last }

// RateLimited is returned after the backoff budget is exhausted on provider
// rate limiting.
type RateLimited struct {
	Attempts int
	Last     error
}

func (e *RateLimited) Error() string {
	return fmt.Sprintf("rate limited after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RateLimited) Unwrap() error { return e.Last }

// TerminalAPIError is any non-success, non-rate-limit provider response. It
// is never retried.
type TerminalAPIError struct {
	Status int
	Detail string
}

func (e *TerminalAPIError) Error() string {
	return fmt.Sprintf("terminal api error: %d - %s", e.Status, e.Detail)
}
