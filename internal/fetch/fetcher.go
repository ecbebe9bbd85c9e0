// Package fetch retrieves a single page over HTTP with bounded time and a
// redirect budget.
package fetch

import (
	"context"
	"net/http"
	"time"
)

// Response captures everything downstream extraction needs from a fetch.
// FinalURL is the post-redirect URL actually reached; security signals must
// be derived from it, not from the URL originally requested.
type Response struct {
	FinalURL   string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Elapsed    time.Duration
}

// Fetcher retrieves one page. Implementations must treat any non-2xx final
// status, connection error, timeout, or exceeded redirect budget as an
// error return, never a panic.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Response, error)
}
