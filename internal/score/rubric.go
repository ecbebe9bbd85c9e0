// Package score maps a normalized scan record to 1-5 scores per audit
// category using a fixed rubric.
package score

import (
	"errors"
	"fmt"
)

// Category names. These form the closed set of keys a ScoreSet may contain
// and the rows of the rubric catalog.
const (
	CategoryFirstImpressions = "First Impressions & Branding"
	CategoryUserExperience   = "User Experience (UX)"
	CategoryPerformance      = "Performance & Speed"
	CategoryMobile           = "Mobile Responsiveness"
	CategorySEO              = "SEO & Visibility"
	CategorySecurity         = "Security & Compliance"
	CategoryContentQuality   = "Content Quality"
	CategoryAccessibility    = "Accessibility"
	CategoryAnalytics        = "Analytics & Conversions"
)

// ErrUnknownCategory is returned when a score names a category the catalog
// does not carry. This is a configuration error, not a scoring error.
var ErrUnknownCategory = errors.New("category not in catalog")

// Category is one audit dimension: a name, exactly five recommendation
// texts indexed by score, and a weight. The weight is declared rubric
// configuration but is not applied by the scoring arithmetic.
type Category struct {
	Name            string
	Recommendations [5]string
	Weight          float64
}

// Catalog is the immutable rubric table. It is built once at startup and
// passed explicitly to the scorer and renderers.
type Catalog struct {
	categories []Category
	byName     map[string]Category
}

// NewCatalog builds a Catalog from the given categories, preserving order.
func NewCatalog(categories []Category) *Catalog {
	byName := make(map[string]Category, len(categories))
	for _, c := range categories {
		byName[c.Name] = c
	}
	return &Catalog{categories: categories, byName: byName}
}

// Categories returns the catalog rows in declaration order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Recommendation returns the recommendation text for a category at the
// given score (1-5).
func (c *Catalog) Recommendation(category string, score int) (string, error) {
	cat, ok := c.byName[category]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if score < 1 || score > 5 {
		return "", fmt.Errorf("score %d out of range for %q", score, category)
	}
	return cat.Recommendations[score-1], nil
}

// DefaultCatalog returns the built-in rubric. It contains the seven scored
// categories plus two declared-but-unscored rows kept as rubric
// configuration.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Category{
		{
			Name: CategoryFirstImpressions,
			Recommendations: [5]string{
				"Lacks professional design and messaging. Recommend full redesign.",
				"Unclear offer. Suggest branding update, clearer value prop, and trust elements.",
				"Decent design, but needs polish. Recommend refining layout and visuals.",
				"Strong branding with minor design updates suggested.",
				"Excellent branding. No improvements needed.",
			},
			Weight: 1.2,
		},
		{
			Name: CategoryUserExperience,
			Recommendations: [5]string{
				"Confusing journey. Full UX overhaul needed.",
				"Navigation and flow inconsistent. Suggest restructuring.",
				"Usable, but some friction. Recommend usability testing.",
				"Good UX with minor friction points. Suggest tweaks.",
				"Excellent UX. No changes needed.",
			},
			Weight: 1.3,
		},
		{
			Name: CategoryPerformance,
			Recommendations: [5]string{
				"Extremely slow. Recommend full optimization (hosting, images, scripts).",
				"Slow load times. Suggest compressing assets and optimizing code.",
				"Acceptable speed. Room for improvement with lazy loading/CDN.",
				"Good performance with small issues to address.",
				"Excellent performance. No changes needed.",
			},
			Weight: 1.0,
		},
		{
			Name: CategoryMobile,
			Recommendations: [5]string{
				"Poor experience on mobile. Recommend responsive redesign.",
				"Major mobile issues. Redesign mobile layout and fix touch elements.",
				"Responsive but with usability gaps. Suggest mobile-specific adjustments.",
				"Good responsiveness. Test and refine further.",
				"Perfect mobile design. No improvements needed.",
			},
			Weight: 1.0,
		},
		{
			Name: CategorySEO,
			Recommendations: [5]string{
				"No SEO foundations. Recommend full setup (meta, sitemap, schema).",
				"Minimal SEO. Recommend on-page SEO and metadata improvements.",
				"Basic SEO setup. Recommend keyword and content optimization.",
				"Good SEO. Suggest content strategy enhancements.",
				"Excellent SEO. No improvements needed.",
			},
			Weight: 1.0,
		},
		{
			Name: CategorySecurity,
			Recommendations: [5]string{
				"No HTTPS or compliance. Urgent fixes needed (SSL, policy, updates).",
				"Basic security but missing compliance features. Recommend updates.",
				"Secure but outdated components. Suggest plugin/CMS updates.",
				"Secure with minor improvements needed.",
				"Fully secure and compliant. No changes needed.",
			},
			Weight: 1.0,
		},
		{
			Name: CategoryContentQuality,
			Recommendations: [5]string{
				"Very thin content. Recommend a full content plan and rewrite.",
				"Sparse content. Add substantive copy to key pages.",
				"Adequate content. Recommend expanding depth on core topics.",
				"Good content with room for richer detail.",
				"Excellent content depth. No changes needed.",
			},
			Weight: 1.0,
		},
		{
			Name: CategoryAccessibility,
			Recommendations: [5]string{
				"No accessibility. Recommend WCAG audit and full compliance plan.",
				"Major issues (contrast, keyboard nav). Recommend improvements.",
				"Some basics present. Suggest screen reader and contrast review.",
				"Mostly compliant. Suggest accessibility testing tools.",
				"Fully compliant and accessible. Great work!",
			},
			Weight: 1.0,
		},
		{
			Name: CategoryAnalytics,
			Recommendations: [5]string{
				"No tracking. Recommend GA4, goal setup, CRM integration.",
				"Basic analytics only. Add events and conversion goals.",
				"Some tracking in place. Recommend UTM and funnel tracking.",
				"Well-tracked site. Suggest dashboards and heatmaps.",
				"Excellent analytics. Fully optimized.",
			},
			Weight: 1.0,
		},
	})
}
