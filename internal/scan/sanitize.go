package scan

import (
	"fmt"
	"math"
	"time"
)

// defaults is one set of replacement values used when a record field is
// damaged (NaN, infinite, or negative numerics; nil maps or slices).
type defaults struct {
	loadTime   float64
	pageSizeKB float64
	requests   int
	domDepth   int
	annotate   bool
}

// looseDefaults restores the neutral zero values and annotates the record,
// matching the defaults a fresh record starts with.
var looseDefaults = defaults{annotate: true}

// strictDefaults is tuned for scoring: damaged values are replaced with
// pessimistic ones so unknown input scores as bad, not neutral.
var strictDefaults = defaults{
	loadTime:   8.0,
	pageSizeKB: 1000.0,
	requests:   30,
	domDepth:   20,
}

// Sanitize repairs any field of the record that no longer satisfies the
// record invariant, replacing it with its declared default and recording a
// warning annotation. It is idempotent: a record that has been sanitized
// once passes through unchanged.
func Sanitize(r *Record) *Record {
	return sanitize(r, looseDefaults)
}

// SanitizeStrict repairs damaged fields with penalizing defaults before
// scoring. Valid values, including legitimate zeros, are left untouched.
func SanitizeStrict(r *Record) *Record {
	return sanitize(r, strictDefaults)
}

func sanitize(r *Record, d defaults) *Record {
	if r == nil {
		r = NewRecord()
	}
	if r.Issues == nil {
		r.Issues = []string{}
	}
	if r.Meta.OGTags == nil {
		r.Meta.OGTags = map[string]string{}
	}
	if r.Basic.ScanTimestamp == "" {
		r.Basic.ScanTimestamp = time.Now().UTC().Format(time.RFC3339)
	}

	fixFloat(r, "basic.load_time", &r.Basic.LoadTime, d.loadTime, d.annotate)
	fixFloat(r, "performance.page_size_kb", &r.Performance.PageSizeKB, d.pageSizeKB, d.annotate)
	fixInt(r, "performance.requests", &r.Performance.Requests, d.requests, d.annotate)
	fixInt(r, "performance.dom_elements", &r.Performance.DOMElements, 0, d.annotate)
	fixInt(r, "performance.dom_depth", &r.Performance.DOMDepth, d.domDepth, d.annotate)
	fixInt(r, "meta.title_length", &r.Meta.TitleLength, 0, d.annotate)
	fixInt(r, "resources.images", &r.Resources.Images, 0, d.annotate)
	fixInt(r, "resources.stylesheets", &r.Resources.Stylesheets, 0, d.annotate)
	fixInt(r, "resources.scripts", &r.Resources.Scripts, 0, d.annotate)
	fixInt(r, "accessibility.alt_text_images", &r.Accessibility.AltTextImages, 0, d.annotate)
	fixInt(r, "accessibility.aria_attributes", &r.Accessibility.AriaAttribute, 0, d.annotate)

	return r
}

func fixFloat(r *Record, name string, v *float64, def float64, annotate bool) {
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		if annotate {
			r.AddIssue(fmt.Sprintf("sanitizer: invalid %s reset to %.1f", name, def))
		}
		*v = def
	}
}

func fixInt(r *Record, name string, v *int, def int, annotate bool) {
	if *v < 0 {
		if annotate {
			r.AddIssue(fmt.Sprintf("sanitizer: invalid %s reset to %d", name, def))
		}
		*v = def
	}
}
