package scan

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Extractor pulls the signal catalog out of a fetched page. Every field is
// extracted independently: one field failing leaves the others intact.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor builds an Extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract parses the raw response body and populates a fresh record with
// every signal it can recover. It never fails: unparseable input degrades to
// an all-default record with the problem noted in Issues.
func (e *Extractor) Extract(body []byte, finalURL string, headers http.Header, elapsed time.Duration) *Record {
	rec := NewRecord()
	Sanitize(rec)

	rec.Basic.LoadTime = elapsed.Seconds()
	rec.Performance.PageSizeKB = float64(len(body)) / 1024

	if u, err := url.Parse(finalURL); err == nil {
		rec.Security.HTTPS = u.Scheme == "https"
	}
	if headers != nil {
		rec.Security.HSTS = headers.Get("Strict-Transport-Security") != ""
		rec.Security.ContentSecurityPolicy = headers.Get("Content-Security-Policy") != ""
		rec.Security.XFrameOptions = headers.Get("X-Frame-Options") != ""
	}

	doc := e.parseDocument(body, rec)

	e.field(rec, "title", func() {
		title := doc.Find("title").First().Text()
		rec.Meta.Title = title
		rec.Meta.TitleLength = utf8.RuneCountInString(title)
	})
	e.field(rec, "description", func() {
		rec.Meta.Description = doc.Find(`meta[name="description"]`).First().AttrOr("content", "")
	})
	e.field(rec, "viewport", func() {
		rec.Meta.Viewport = doc.Find(`meta[name="viewport"]`).Length() > 0
	})
	e.field(rec, "favicon", func() {
		rec.Meta.HasFavicon = findLinkByRel(doc, "icon").Length() > 0
	})
	e.field(rec, "canonical", func() {
		rec.Meta.Canonical = findLinkByRel(doc, "canonical").First().AttrOr("href", "")
	})
	e.field(rec, "og_tags", func() {
		doc.Find(`meta[property^="og:"]`).Each(func(_ int, s *goquery.Selection) {
			prop, _ := s.Attr("property")
			if prop != "" {
				rec.Meta.OGTags[prop] = s.AttrOr("content", "")
			}
		})
	})
	e.field(rec, "resources", func() {
		rec.Resources.Images = doc.Find("img").Length()
		rec.Resources.Stylesheets = findLinkByRel(doc, "stylesheet").Length()
		rec.Resources.Scripts = doc.Find("script[src]").Length()
	})
	e.field(rec, "alt_text_images", func() {
		count := 0
		doc.Find("img").Each(func(_ int, s *goquery.Selection) {
			if alt, ok := s.Attr("alt"); ok && alt != "" {
				count++
			}
		})
		rec.Accessibility.AltTextImages = count
	})
	e.field(rec, "lang_attribute", func() {
		rec.Accessibility.LangAttribute = doc.Find("html").First().AttrOr("lang", "") != ""
	})
	e.field(rec, "aria_attributes", func() {
		count := 0
		doc.Find("*").Each(func(_ int, s *goquery.Selection) {
			for _, node := range s.Nodes {
				for _, attr := range node.Attr {
					if strings.HasPrefix(attr.Key, "aria-") {
						count++
						break
					}
				}
			}
		})
		rec.Accessibility.AriaAttribute = count
	})
	e.field(rec, "dom_metrics", func() {
		elements, depth := domMetrics(doc)
		rec.Performance.DOMElements = elements
		rec.Performance.DOMDepth = depth
	})
	e.field(rec, "requests", func() {
		rec.Performance.Requests = 1 + rec.Resources.Images + rec.Resources.Stylesheets + rec.Resources.Scripts
	})

	return rec
}

// field runs one extraction rule, converting a panic into an issue entry so
// the remaining rules still run.
func (e *Extractor) field(rec *Record, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("extraction failed for %s: %v", name, r)
			e.logger.Warn("field extraction failed", zap.String("field", name), zap.Any("cause", r))
			rec.AddIssue(msg)
		}
	}()
	fn()
}

// parseDocument decodes the body and parses it, falling back through parser
// strategies. The worst case is an empty but traversable document.
func (e *Extractor) parseDocument(body []byte, rec *Record) *goquery.Document {
	text := strings.ToValidUTF8(string(body), "�")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err == nil && doc.Find("*").Length() > 0 {
		return doc
	}

	if node, perr := html.Parse(strings.NewReader(text)); perr == nil {
		e.logger.Warn("primary parse unusable, using node-tree fallback", zap.Error(err))
		return goquery.NewDocumentFromNode(node)
	}

	e.logger.Warn("all parsers failed, returning empty document")
	rec.AddIssue("html parsing failed, continuing with default signals")
	empty, _ := html.Parse(strings.NewReader(""))
	return goquery.NewDocumentFromNode(empty)
}

// findLinkByRel matches link tags whose rel attribute contains the given
// token, so rel="shortcut icon" still counts as an icon link.
func findLinkByRel(doc *goquery.Document, token string) *goquery.Selection {
	return doc.Find("link").FilterFunction(func(_ int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		for _, part := range strings.Fields(strings.ToLower(rel)) {
			if part == token {
				return true
			}
		}
		return false
	})
}

// domMetrics walks the parsed tree counting element nodes and the deepest
// element nesting level.
func domMetrics(doc *goquery.Document) (elements, depth int) {
	var walk func(n *html.Node, level int)
	walk = func(n *html.Node, level int) {
		if n.Type == html.ElementNode {
			elements++
			if level > depth {
				depth = level
			}
			level++
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child, level)
		}
	}
	for _, root := range doc.Nodes {
		walk(root, 0)
	}
	return elements, depth
}
