package scan

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html lang="en">
<head>
  <title>An Example Page About Interesting Web Things</title>
  <meta name="description" content="A page used to exercise the signal extractor in tests.">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <meta property="og:title" content="An Example Page">
  <meta property="og:type" content="website">
  <link rel="shortcut icon" href="/favicon.ico">
  <link rel="canonical" href="https://example.com/page">
  <link rel="stylesheet" href="/main.css">
  <link rel="stylesheet" href="/print.css">
  <script src="/app.js"></script>
  <script>var inline = true;</script>
</head>
<body>
  <main aria-label="content">
    <h1>Heading</h1>
    <img src="/a.png" alt="first">
    <img src="/b.png" alt="">
    <img src="/c.png">
    <button aria-pressed="false">Toggle</button>
  </main>
</body>
</html>`

func sampleHeaders() http.Header {
	h := http.Header{}
	h.Set("Strict-Transport-Security", "max-age=63072000")
	h.Set("X-Frame-Options", "DENY")
	return h
}

func TestExtractor_Extract_FullPage(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil)
	rec := e.Extract([]byte(samplePage), "https://example.com/page", sampleHeaders(), 1200*time.Millisecond)

	require.Equal(t, "An Example Page About Interesting Web Things", rec.Meta.Title)
	require.Equal(t, 44, rec.Meta.TitleLength)
	require.Equal(t, "A page used to exercise the signal extractor in tests.", rec.Meta.Description)
	require.True(t, rec.Meta.Viewport)
	require.True(t, rec.Meta.HasFavicon, "shortcut icon counts as a favicon")
	require.Equal(t, "https://example.com/page", rec.Meta.Canonical)
	require.Equal(t, map[string]string{
		"og:title": "An Example Page",
		"og:type":  "website",
	}, rec.Meta.OGTags)

	require.Equal(t, 3, rec.Resources.Images)
	require.Equal(t, 2, rec.Resources.Stylesheets)
	require.Equal(t, 1, rec.Resources.Scripts, "only external scripts count")

	require.Equal(t, 1, rec.Accessibility.AltTextImages, "empty alt does not count")
	require.True(t, rec.Accessibility.LangAttribute)
	require.Equal(t, 2, rec.Accessibility.AriaAttribute)

	require.True(t, rec.Security.HTTPS)
	require.True(t, rec.Security.HSTS)
	require.False(t, rec.Security.ContentSecurityPolicy)
	require.True(t, rec.Security.XFrameOptions)

	require.InDelta(t, 1.2, rec.Basic.LoadTime, 0.001)
	require.InDelta(t, float64(len(samplePage))/1024, rec.Performance.PageSizeKB, 0.001)
	require.Equal(t, 1+3+2+1, rec.Performance.Requests)
	require.Greater(t, rec.Performance.DOMElements, 10)
	require.Greater(t, rec.Performance.DOMDepth, 2)
	require.Empty(t, rec.Issues)
}

func TestExtractor_Extract_HTTPFinalURL(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil)
	rec := e.Extract([]byte(samplePage), "http://example.com/page", nil, time.Second)

	require.False(t, rec.Security.HTTPS, "https must reflect the final URL")
	require.False(t, rec.Security.HSTS)
}

func TestExtractor_Extract_EmptyBody(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil)
	rec := e.Extract(nil, "https://example.com", nil, 0)

	require.Equal(t, "", rec.Meta.Title)
	require.Equal(t, 0, rec.Resources.Images)
	require.Equal(t, 0.0, rec.Performance.PageSizeKB)
	require.NotNil(t, rec.Meta.OGTags)
}

func TestExtractor_Extract_MalformedMarkup(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil)
	body := []byte("<html><head><title>broken<body><p>unclosed<div><img src=x alt=ok")
	rec := e.Extract(body, "https://example.com", nil, time.Second)

	// A tolerant parser still recovers what it can.
	require.Equal(t, 1, rec.Resources.Images)
	require.Equal(t, 1, rec.Accessibility.AltTextImages)
}

func TestExtractor_Extract_InvalidUTF8(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil)
	body := append([]byte("<html><head><title>ok</title></head><body>"), 0xff, 0xfe, 0xfd)
	body = append(body, []byte("</body></html>")...)

	rec := e.Extract(body, "https://example.com", nil, time.Second)
	require.Equal(t, "ok", rec.Meta.Title)
}
