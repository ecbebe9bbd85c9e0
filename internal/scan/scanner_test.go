package scan

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sitegrade/sitegrade/internal/fetch"
)

type fakeFetcher struct {
	resp fetch.Response
	err  error
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (fetch.Response, error) {
	return f.resp, f.err
}

func TestScanner_Run_Success(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{resp: fetch.Response{
		FinalURL:   "https://example.com/",
		StatusCode: http.StatusOK,
		Headers:    http.Header{"Strict-Transport-Security": []string{"max-age=300"}},
		Body:       []byte(`<html lang="en"><head><title>hi</title></head><body></body></html>`),
		Elapsed:    800 * time.Millisecond,
	}}
	s := NewScanner(fetcher, nil)

	outcome := s.Run(context.Background(), "example.com")

	require.Equal(t, StatusSuccess, outcome.Status)
	require.Equal(t, "https://example.com", outcome.URL)
	require.Equal(t, "hi", outcome.Record.Meta.Title)
	require.True(t, outcome.Record.Security.HTTPS)
	require.True(t, outcome.Record.Security.HSTS)
	require.InDelta(t, 0.8, outcome.Record.Basic.LoadTime, 0.001)
	require.NotNil(t, outcome.Body)
}

func TestScanner_Run_FetchFailureDegradesGracefully(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{
		resp: fetch.Response{Elapsed: 20 * time.Second},
		err:  errors.New("context deadline exceeded"),
	}
	s := NewScanner(fetcher, nil)

	outcome := s.Run(context.Background(), "https://slow.example.com")

	require.Equal(t, StatusSuccess, outcome.Status, "a failed fetch still yields a scoreable record")
	require.Equal(t, 0.0, outcome.Record.Performance.PageSizeKB)
	require.InDelta(t, 20.0, outcome.Record.Basic.LoadTime, 0.001)
	require.NotEmpty(t, outcome.Record.Issues)
	require.Contains(t, outcome.Record.Issues[0], "request failed")
}

func TestScanner_Run_ValidationError(t *testing.T) {
	t.Parallel()

	s := NewScanner(&fakeFetcher{}, nil)

	outcome := s.Run(context.Background(), "")

	require.Equal(t, StatusError, outcome.Status)
	require.NotEmpty(t, outcome.Message)
	require.NotNil(t, outcome.Record, "callers can still render the defaulted record")
}

func TestScanner_Run_FinalURLDeterminesHTTPS(t *testing.T) {
	t.Parallel()

	// Requested over https, but the redirect chain landed on http.
	fetcher := &fakeFetcher{resp: fetch.Response{
		FinalURL:   "http://insecure.example.com/",
		StatusCode: http.StatusOK,
		Body:       []byte("<html></html>"),
		Elapsed:    time.Second,
	}}
	s := NewScanner(fetcher, nil)

	outcome := s.Run(context.Background(), "https://insecure.example.com")

	require.Equal(t, StatusSuccess, outcome.Status)
	require.False(t, outcome.Record.Security.HTTPS)
}
