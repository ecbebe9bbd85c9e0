package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
)

// Config controls collector behavior.
type Config struct {
	UserAgent    string
	Timeout      time.Duration
	MaxRedirects int
}

// CollyFetcher implements Fetcher using the Colly collector.
type CollyFetcher struct {
	cfg           Config
	baseCollector *colly.Collector
}

// NewCollyFetcher builds a CollyFetcher.
func NewCollyFetcher(cfg Config) *CollyFetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxRedirects == 0 {
		cfg.MaxRedirects = 5
	}
	c := colly.NewCollector(colly.Async(false))
	c.IgnoreRobotsTxt = true
	return &CollyFetcher{cfg: cfg, baseCollector: c}
}

// Fetch executes a single HTTP GET. The full body is buffered and the
// post-redirect URL recorded. Redirects beyond the budget and non-2xx final
// statuses surface as errors.
func (f *CollyFetcher) Fetch(ctx context.Context, url string) (Response, error) {
	var (
		result   Response
		fetchErr error
	)
	start := time.Now()

	collector := f.baseCollector.Clone()
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	collector.SetRequestTimeout(f.cfg.Timeout)
	collector.SetRedirectHandler(func(_ *http.Request, via []*http.Request) error {
		if len(via) >= f.cfg.MaxRedirects {
			return fmt.Errorf("stopped after %d redirects", f.cfg.MaxRedirects)
		}
		return nil
	})

	collector.OnResponse(func(r *colly.Response) {
		result = Response{
			FinalURL:   r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Headers:    r.Headers.Clone(),
			Body:       append([]byte(nil), r.Body...),
			Elapsed:    time.Since(start),
		}
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			fetchErr = fmt.Errorf("request failed with status %d: %w", r.StatusCode, err)
			return
		}
		fetchErr = err
	})

	if err := f.runCollector(ctx, collector, url); err != nil {
		return Response{Elapsed: time.Since(start)}, err
	}
	if fetchErr != nil {
		return Response{Elapsed: time.Since(start)}, fmt.Errorf("fetch %s: %w", url, fetchErr)
	}
	if result.StatusCode < 200 || result.StatusCode >= 300 {
		return Response{Elapsed: time.Since(start)}, fmt.Errorf("fetch %s: unexpected status %d", url, result.StatusCode)
	}
	return result, nil
}

func (f *CollyFetcher) runCollector(ctx context.Context, collector *colly.Collector, url string) error {
	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("visit failed: %w", err)
		}
		return nil
	}
}
