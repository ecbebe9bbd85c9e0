// Package report renders scan results as user-facing artifacts: the chart
// payload for the results page and the downloadable xlsx workbook.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/sitegrade/sitegrade/internal/scan"
	"github.com/sitegrade/sitegrade/internal/score"
)

// scoreColors maps a score to the fill color used in the scorecard and the
// results chart, red through green.
var scoreColors = map[int]string{
	1: "FF0000",
	2: "FF6600",
	3: "FFCC00",
	4: "92D050",
	5: "00B050",
}

// ChartData is the payload the results page chart consumes.
type ChartData struct {
	Labels []string `json:"labels"`
	Values []int    `json:"data"`
	Colors []string `json:"colors"`
}

// BuildChartData flattens a score set into the chart payload, in the fixed
// report order.
func BuildChartData(scores score.ScoreSet) ChartData {
	cd := ChartData{
		Colors: []string{"#e74c3c", "#e67e22", "#f1c40f", "#2ecc71", "#27ae60"},
	}
	for _, name := range score.Scored {
		if v, ok := scores[name]; ok {
			cd.Labels = append(cd.Labels, name)
			cd.Values = append(cd.Values, v)
		}
	}
	return cd
}

// Priority buckets a score for the scorecard: failing scores need attention
// first.
func Priority(s int) string {
	switch {
	case s <= 2:
		return "High"
	case s == 3:
		return "Medium"
	default:
		return "Low"
	}
}

// Details produces the contextual detail string shown next to a category's
// score, built from the signals that category was scored on.
func Details(category string, rec *scan.Record) string {
	switch category {
	case score.CategoryPerformance:
		return fmt.Sprintf("Load Time: %.2fs\nPage Size: %.1fKB\nRequests: %d\nDOM Depth: %d",
			rec.Basic.LoadTime, rec.Performance.PageSizeKB, rec.Performance.Requests, rec.Performance.DOMDepth)
	case score.CategorySecurity:
		out := fmt.Sprintf("HTTPS: %s", yesNo(rec.Security.HTTPS))
		if rec.Security.HTTPS {
			out += fmt.Sprintf("\nHSTS: %s", yesNo(rec.Security.HSTS))
		}
		return out + fmt.Sprintf("\nCSP Header: %s", yesNo(rec.Security.ContentSecurityPolicy))
	case score.CategoryMobile:
		return fmt.Sprintf("Viewport: %s\nImages: %d\nResponsive CSS: %d sheets",
			presentMissing(rec.Meta.Viewport), rec.Resources.Images, rec.Resources.Stylesheets)
	case score.CategoryFirstImpressions:
		return fmt.Sprintf("Title: %s\nFavicon: %s",
			presentMissing(rec.Meta.Title != ""), presentMissing(rec.Meta.HasFavicon))
	case score.CategoryAccessibility:
		lang := "Missing"
		if rec.Accessibility.LangAttribute {
			lang = "Set"
		}
		return fmt.Sprintf("Alt Text: %d/%d images\nARIA Attributes: %d\nLanguage: %s",
			rec.Accessibility.AltTextImages, rec.Resources.Images, rec.Accessibility.AriaAttribute, lang)
	case score.CategorySEO:
		return fmt.Sprintf("Title Length: %d chars\nDescription: %s\nViewport: %s",
			rec.Meta.TitleLength, presentMissing(rec.Meta.Description != ""), presentMissing(rec.Meta.Viewport))
	default:
		return ""
	}
}

// TopRecommendations returns up to n recommendations for the lowest-scoring
// categories, worst first. Categories missing from the catalog are skipped;
// that situation is reported by the workbook builder instead.
func TopRecommendations(scores score.ScoreSet, catalog *score.Catalog, n int) []string {
	type entry struct {
		name string
		val  int
	}
	entries := make([]entry, 0, len(scores))
	for _, name := range score.Scored {
		if v, ok := scores[name]; ok {
			entries = append(entries, entry{name, v})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].val < entries[j].val })

	out := make([]string, 0, n)
	for _, e := range entries {
		if len(out) == n {
			break
		}
		if rec, err := catalog.Recommendation(e.name, e.val); err == nil {
			out = append(out, rec)
		}
	}
	return out
}

// Filename returns the download name for a workbook generated at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("Website_Review_%s.xlsx", t.Format("20060102_150405"))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func presentMissing(b bool) string {
	if b {
		return "Present"
	}
	return "Missing"
}
