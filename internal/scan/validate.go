package scan

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
)

var (
	// ErrEmptyURL is returned when the submitted URL is blank.
	ErrEmptyURL = errors.New("url cannot be empty")

	// ErrMalformedURL is returned when the submitted URL cannot be parsed
	// into a usable scheme and host.
	ErrMalformedURL = errors.New("malformed url")
)

// ValidateURL normalizes and sanity-checks a user-supplied URL before any
// network access happens. A bare domain is prefixed with https://. The
// returned URL is HTML-escaped so it is safe to embed in generated markup.
func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: missing scheme or host", ErrMalformedURL)
	}
	if !strings.Contains(u.Host, ".") || len(u.Host) < 4 {
		return "", fmt.Errorf("%w: invalid domain %q", ErrMalformedURL, u.Host)
	}

	return html.EscapeString(raw), nil
}
