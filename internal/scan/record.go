// Package scan implements the scan pipeline: URL validation, signal
// extraction from a fetched page, and record sanitization.
package scan

import "time"

// Record is the complete normalized signal set for one scanned page.
// Every field is populated with a type-correct default at construction;
// Sanitize restores that guarantee whenever a field is damaged.
type Record struct {
	Basic         Basic         `json:"basic"`
	Meta          Meta          `json:"meta"`
	Resources     Resources     `json:"resources"`
	Performance   Performance   `json:"performance"`
	Security      Security      `json:"security"`
	Accessibility Accessibility `json:"accessibility"`

	// Issues collects human-readable problems encountered during the scan,
	// in the order they occurred.
	Issues []string `json:"issues"`
}

// Basic holds timing metadata for the scan itself.
type Basic struct {
	LoadTime      float64 `json:"load_time"`
	ScanTimestamp string  `json:"scan_timestamp"`
}

// Meta holds signals extracted from the document head.
type Meta struct {
	Title       string            `json:"title"`
	TitleLength int               `json:"title_length"`
	Description string            `json:"description"`
	Viewport    bool              `json:"viewport"`
	HasFavicon  bool              `json:"has_favicon"`
	Canonical   string            `json:"canonical"`
	OGTags      map[string]string `json:"og_tags"`
}

// Resources counts the external assets referenced by the page.
type Resources struct {
	Images      int `json:"images"`
	Stylesheets int `json:"stylesheets"`
	Scripts     int `json:"scripts"`
}

// Performance holds size and structure metrics.
type Performance struct {
	PageSizeKB  float64 `json:"page_size_kb"`
	Requests    int     `json:"requests"`
	DOMElements int     `json:"dom_elements"`
	DOMDepth    int     `json:"dom_depth"`
}

// Security records transport security and response header signals.
// HTTPS reflects the post-redirect URL actually reached, not the one
// originally requested.
type Security struct {
	HTTPS                 bool `json:"https"`
	HSTS                  bool `json:"hsts"`
	ContentSecurityPolicy bool `json:"content_security_policy"`
	XFrameOptions         bool `json:"x_frame_options"`
}

// Accessibility holds the accessibility signals.
type Accessibility struct {
	AltTextImages int  `json:"alt_text_images"`
	LangAttribute bool `json:"lang_attribute"`
	AriaAttribute int  `json:"aria_attributes"`
}

// NewRecord returns a fully initialized record with every field at its
// default and the scan timestamp set to now.
func NewRecord() *Record {
	return &Record{
		Basic: Basic{
			LoadTime:      0.0,
			ScanTimestamp: time.Now().UTC().Format(time.RFC3339),
		},
		Meta: Meta{
			OGTags: map[string]string{},
		},
		Issues: []string{},
	}
}

// AddIssue appends a human-readable issue to the record.
func (r *Record) AddIssue(msg string) {
	r.Issues = append(r.Issues, msg)
}
