package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sitegrade/sitegrade/internal/scan"
	"github.com/sitegrade/sitegrade/internal/score"
)

func sampleRecord() *scan.Record {
	rec := scan.NewRecord()
	rec.Basic.LoadTime = 1.8
	rec.Basic.ScanTimestamp = "2025-03-14 09:26:53"
	rec.Meta.Title = "Example Site"
	rec.Meta.TitleLength = 12
	rec.Meta.Description = "An example."
	rec.Meta.Viewport = true
	rec.Meta.HasFavicon = true
	rec.Meta.OGTags = map[string]string{"og:title": "Example Site"}
	rec.Resources.Images = 4
	rec.Resources.Stylesheets = 2
	rec.Resources.Scripts = 3
	rec.Performance.PageSizeKB = 420.5
	rec.Performance.Requests = 10
	rec.Performance.DOMElements = 140
	rec.Performance.DOMDepth = 9
	rec.Security.HTTPS = true
	rec.Security.HSTS = true
	rec.Accessibility.AltTextImages = 4
	rec.Accessibility.LangAttribute = true
	rec.Accessibility.AriaAttribute = 3
	return rec
}

func TestBuildWorkbook_ThreeSheets(t *testing.T) {
	t.Parallel()

	f, err := BuildWorkbook("https://example.com", fullScores(), sampleRecord(), score.DefaultCatalog())
	require.NoError(t, err)
	defer f.Close()

	require.ElementsMatch(t, []string{"Scorecard", "Scan Details", "Summary"}, f.GetSheetList())
}

func TestBuildWorkbook_ScorecardRows(t *testing.T) {
	t.Parallel()

	catalog := score.DefaultCatalog()
	f, err := BuildWorkbook("https://example.com", fullScores(), sampleRecord(), catalog)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Scorecard", "A1")
	require.NoError(t, err)
	require.Equal(t, "Category", header)

	// First data row is the first entry of the report order.
	name, err := f.GetCellValue("Scorecard", "A2")
	require.NoError(t, err)
	require.Equal(t, score.CategoryPerformance, name)

	val, err := f.GetCellValue("Scorecard", "B2")
	require.NoError(t, err)
	require.Equal(t, "2", val)

	wantRec, err := catalog.Recommendation(score.CategoryPerformance, 2)
	require.NoError(t, err)
	got, err := f.GetCellValue("Scorecard", "C2")
	require.NoError(t, err)
	require.Equal(t, wantRec, got)

	priority, err := f.GetCellValue("Scorecard", "D2")
	require.NoError(t, err)
	require.Equal(t, "High", priority)
}

func TestBuildWorkbook_SummaryMetrics(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()
	rec.Security.HTTPS = false

	f, err := BuildWorkbook("https://example.com", fullScores(), rec, score.DefaultCatalog())
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	require.Equal(t, "Website Review Report", title)

	url, err := f.GetCellValue("Summary", "B5")
	require.NoError(t, err)
	require.Equal(t, "https://example.com", url)

	// "Uses HTTPS" sits at row 12 of the metric block starting at row 5.
	https, err := f.GetCellValue("Summary", "B12")
	require.NoError(t, err)
	require.Equal(t, "No (Critical)", https)
}

func TestBuildWorkbook_MissingCategoryFailsBuild(t *testing.T) {
	t.Parallel()

	empty := score.NewCatalog(nil)
	_, err := BuildWorkbook("https://example.com", fullScores(), sampleRecord(), empty)

	require.Error(t, err)
	require.ErrorIs(t, err, score.ErrUnknownCategory)
}
