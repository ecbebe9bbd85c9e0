package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sitegrade/sitegrade/internal/fetch"
)

// Outcome statuses. Only a validation failure or an unexpected internal
// error is terminal; fetch and parse problems degrade into issues on a
// still-scoreable record.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Outcome is the result of one full scan. Record is always non-nil, even on
// error, so callers can still render something.
type Outcome struct {
	Status  string  `json:"status"`
	URL     string  `json:"url"`
	Record  *Record `json:"record"`
	Message string  `json:"message,omitempty"`
	Body    []byte  `json:"-"`
}

// Scanner runs the validate -> fetch -> extract -> sanitize pipeline for a
// single URL. Scanners hold no per-scan state and are safe for concurrent
// use; every Run builds a fresh record.
type Scanner struct {
	fetcher   fetch.Fetcher
	extractor *Extractor
	logger    *zap.Logger
}

// NewScanner builds a Scanner.
func NewScanner(fetcher fetch.Fetcher, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		fetcher:   fetcher,
		extractor: NewExtractor(logger),
		logger:    logger,
	}
}

// Run scans one URL end to end. A failed fetch still yields a success
// outcome: the record carries zeroed performance/security signals and an
// issue describing the failure.
func (s *Scanner) Run(ctx context.Context, rawURL string) Outcome {
	validated, err := ValidateURL(rawURL)
	if err != nil {
		s.logger.Warn("url validation failed", zap.String("url", rawURL), zap.Error(err))
		return Outcome{
			Status:  StatusError,
			URL:     rawURL,
			Record:  Sanitize(NewRecord()),
			Message: err.Error(),
		}
	}

	s.logger.Info("starting scan", zap.String("url", validated))
	start := time.Now()

	resp, err := s.fetcher.Fetch(ctx, validated)
	if err != nil {
		elapsed := resp.Elapsed
		if elapsed == 0 {
			elapsed = time.Since(start)
		}
		s.logger.Warn("fetch failed", zap.String("url", validated), zap.Error(err))

		rec := Sanitize(NewRecord())
		rec.Basic.LoadTime = elapsed.Seconds()
		rec.Performance.PageSizeKB = 0.0
		rec.AddIssue(fmt.Sprintf("request failed: %v", err))
		return Outcome{Status: StatusSuccess, URL: validated, Record: rec}
	}

	rec := s.extractor.Extract(resp.Body, resp.FinalURL, resp.Headers, resp.Elapsed)
	Sanitize(rec)

	s.logger.Info("scan complete",
		zap.String("url", validated),
		zap.String("final_url", resp.FinalURL),
		zap.Float64("load_time", rec.Basic.LoadTime),
		zap.Float64("page_size_kb", rec.Performance.PageSizeKB),
		zap.Int("issues", len(rec.Issues)),
	)
	return Outcome{Status: StatusSuccess, URL: validated, Record: rec, Body: resp.Body}
}

// IsValidation reports whether err came from URL validation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyURL) || errors.Is(err, ErrMalformedURL)
}
