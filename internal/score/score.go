package score

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/sitegrade/sitegrade/internal/scan"
)

// ScoreSet maps category names to integer scores in [1,5].
type ScoreSet map[string]int

// Scored lists the categories a ScoreSet contains, in report order.
var Scored = []string{
	CategoryPerformance,
	CategorySecurity,
	CategorySEO,
	CategoryMobile,
	CategoryFirstImpressions,
	CategoryContentQuality,
	CategoryAccessibility,
}

// Score maps a record to a score per category. It is deterministic, total,
// and performs no I/O. A strict sanitization pass runs first on a copy, so
// damaged input is scored as if it were bad rather than neutral and the
// caller's record is never mutated.
//
// pageHTML is optional; when nil the Content Quality category keeps its
// default of 3.
func Score(rec *scan.Record, pageHTML []byte) ScoreSet {
	var copied scan.Record
	if rec != nil {
		copied = *rec
	}
	r := scan.SanitizeStrict(&copied)

	return ScoreSet{
		CategoryPerformance:      performanceScore(r),
		CategorySecurity:         securityScore(r),
		CategorySEO:              seoScore(r),
		CategoryMobile:           mobileScore(r),
		CategoryFirstImpressions: firstImpressionsScore(r),
		CategoryContentQuality:   contentQualityScore(pageHTML),
		CategoryAccessibility:    accessibilityScore(r),
	}
}

// performanceScore accumulates points across load time, page weight,
// request count, and DOM depth, then halves and clamps. Thresholds are
// strict: a load time of exactly 1.5s falls into the next bracket down.
func performanceScore(r *scan.Record) int {
	points := 0

	switch load := r.Basic.LoadTime; {
	case load < 1.5:
		points += 4
	case load < 3:
		points += 3
	case load < 5:
		points += 2
	case load < 8:
		points += 1
	}

	switch size := r.Performance.PageSizeKB; {
	case size < 300:
		points += 2
	case size < 800:
		points += 1
	}

	switch reqs := r.Performance.Requests; {
	case reqs < 15:
		points += 2
	case reqs < 30:
		points += 1
	}

	switch depth := r.Performance.DOMDepth; {
	case depth < 15:
		points++
	case depth > 30:
		points--
	}

	return clamp(points/2, 1, 5)
}

func securityScore(r *scan.Record) int {
	s := 1
	if r.Security.HTTPS {
		s += 3
	}
	if r.Security.HSTS {
		s++
	}
	if r.Security.ContentSecurityPolicy {
		s++
	}
	if r.Security.XFrameOptions {
		s++
	}
	return clamp(s, 1, 5)
}

func seoScore(r *scan.Record) int {
	s := 1
	if n := utf8.RuneCountInString(r.Meta.Title); r.Meta.Title != "" && n >= 30 && n <= 60 {
		s += 2
	}
	if n := utf8.RuneCountInString(r.Meta.Description); r.Meta.Description != "" && n >= 50 && n <= 160 {
		s += 2
	}
	if r.Meta.Viewport {
		s++
	}
	if r.Meta.Canonical != "" {
		s++
	}
	if len(r.Meta.OGTags) > 0 {
		s++
	}
	return clamp(s, 1, 5)
}

func mobileScore(r *scan.Record) int {
	s := 1
	if r.Meta.Viewport {
		s += 3
	}
	if r.Resources.Stylesheets > 0 {
		s++
	}
	return clamp(s, 1, 5)
}

func firstImpressionsScore(r *scan.Record) int {
	s := 2
	if r.Meta.HasFavicon {
		s++
	}
	if r.Meta.Title != "" {
		s++
	}
	if r.Meta.Description != "" {
		s++
	}
	return clamp(s, 1, 5)
}

// contentQualityScore counts words in paragraph and heading text. Without
// page content it stays at the neutral default; a parse failure does too.
func contentQualityScore(pageHTML []byte) int {
	s := 3
	if len(pageHTML) == 0 {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(pageHTML))
	if err != nil {
		return s
	}
	var text strings.Builder
	doc.Find("p, h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		text.WriteString(sel.Text())
		text.WriteByte(' ')
	})
	words := len(strings.Fields(text.String()))

	switch {
	case words > 500:
		s++
	case words < 100:
		s--
	}
	return clamp(s, 1, 5)
}

func accessibilityScore(r *scan.Record) int {
	s := 1
	if r.Resources.Images > 0 {
		ratio := float64(r.Accessibility.AltTextImages) / float64(r.Resources.Images)
		switch {
		case ratio > 0.9:
			s += 2
		case ratio > 0.5:
			s++
		}
	}
	if r.Accessibility.LangAttribute {
		s++
	}
	if r.Accessibility.AriaAttribute > 0 {
		s++
	}
	return clamp(s, 1, 5)
}

// Mean returns the unweighted average of all scores, 0 for an empty set.
func (s ScoreSet) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	total := 0
	for _, v := range s {
		total += v
	}
	return float64(total) / float64(len(s))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
