package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sitegrade/sitegrade/internal/scan"
	"github.com/sitegrade/sitegrade/internal/score"
)

const (
	sheetScorecard = "Scorecard"
	sheetDetails   = "Scan Details"
	sheetSummary   = "Summary"

	brandColor     = "2A5CAA"
	highlightColor = "FFF2CC"
	sectionColor   = "D9E1F2"
)

// workbookBuilder wraps an excelize file and keeps the first error any cell
// operation produced, so the sheet-building code stays readable.
type workbookBuilder struct {
	f   *excelize.File
	err error
}

// BuildWorkbook renders (url, scores, record) into a styled three-sheet
// workbook: the scorecard, the raw signal dump, and an executive summary.
// A scored category missing from the catalog is a configuration error and
// fails the build.
func BuildWorkbook(url string, scores score.ScoreSet, rec *scan.Record, catalog *score.Catalog) (*excelize.File, error) {
	b := &workbookBuilder{f: excelize.NewFile()}

	if err := b.f.SetSheetName("Sheet1", sheetScorecard); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := b.buildScorecard(scores, rec, catalog); err != nil {
		return nil, err
	}
	b.buildDetails(rec)
	b.buildSummary(url, scores, rec, catalog)

	if b.err != nil {
		return nil, fmt.Errorf("build workbook: %w", b.err)
	}
	return b.f, nil
}

func (b *workbookBuilder) buildScorecard(scores score.ScoreSet, rec *scan.Record, catalog *score.Catalog) error {
	headerStyle := b.newStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{brandColor}},
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	cellStyle := b.newStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 11},
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	lowScoreStyle := b.newStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{highlightColor}},
		Font:      &excelize.Font{Size: 11},
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})

	headers := []string{"Category", "Score", "Recommendation", "Priority", "Details"}
	for i, h := range headers {
		b.setCell(sheetScorecard, cellName(i+1, 1), h)
	}
	b.setStyle(sheetScorecard, "A1", "E1", headerStyle)

	row := 2
	for _, name := range score.Scored {
		s, ok := scores[name]
		if !ok {
			continue
		}
		recommendation, err := catalog.Recommendation(name, s)
		if err != nil {
			return fmt.Errorf("scorecard: %w", err)
		}

		b.setCell(sheetScorecard, cellName(1, row), name)
		b.setCell(sheetScorecard, cellName(2, row), s)
		b.setCell(sheetScorecard, cellName(3, row), recommendation)
		b.setCell(sheetScorecard, cellName(4, row), Priority(s))
		b.setCell(sheetScorecard, cellName(5, row), Details(name, rec))

		rowStyle := cellStyle
		if s <= 2 {
			rowStyle = lowScoreStyle
		}
		b.setStyle(sheetScorecard, cellName(1, row), cellName(5, row), rowStyle)

		scoreStyle := b.newStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{scoreColors[s]}},
			Font:      &excelize.Font{Bold: true},
			Border:    thinBorder(),
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		b.setStyle(sheetScorecard, cellName(2, row), cellName(2, row), scoreStyle)
		b.check(b.f.SetRowHeight(sheetScorecard, row, 60))
		row++
	}

	b.check(b.f.SetColWidth(sheetScorecard, "A", "A", 28))
	b.check(b.f.SetColWidth(sheetScorecard, "B", "B", 8))
	b.check(b.f.SetColWidth(sheetScorecard, "C", "C", 65))
	b.check(b.f.SetColWidth(sheetScorecard, "D", "D", 12))
	b.check(b.f.SetColWidth(sheetScorecard, "E", "E", 40))
	b.freezeHeader(sheetScorecard)
	b.check(b.f.AutoFilter(sheetScorecard, fmt.Sprintf("A1:E%d", row-1), nil))
	return nil
}

func (b *workbookBuilder) buildDetails(rec *scan.Record) {
	b.addSheet(sheetDetails)

	sectionStyle := b.newStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{sectionColor}},
		Font: &excelize.Font{Bold: true, Size: 14, Color: brandColor},
	})
	boldStyle := b.newStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	yesStyle := b.newStyle(&excelize.Style{Font: &excelize.Font{Color: "00B050"}})
	noStyle := b.newStyle(&excelize.Style{Font: &excelize.Font{Color: "FF0000"}})
	linkStyle := b.newStyle(&excelize.Style{Font: &excelize.Font{Color: "0563C1", Underline: "single"}})

	row := 1
	for _, section := range recordSections(rec) {
		b.check(b.f.MergeCell(sheetDetails, cellName(1, row), cellName(2, row)))
		b.setCell(sheetDetails, cellName(1, row), section.title)
		b.setStyle(sheetDetails, cellName(1, row), cellName(2, row), sectionStyle)
		row++

		b.setCell(sheetDetails, cellName(1, row), "Metric")
		b.setCell(sheetDetails, cellName(2, row), "Value")
		b.setStyle(sheetDetails, cellName(1, row), cellName(2, row), boldStyle)
		row++

		for _, kv := range section.rows {
			b.setCell(sheetDetails, cellName(1, row), kv.label)
			valueCell := cellName(2, row)
			switch v := kv.value.(type) {
			case bool:
				b.setCell(sheetDetails, valueCell, yesNo(v))
				if v {
					b.setStyle(sheetDetails, valueCell, valueCell, yesStyle)
				} else {
					b.setStyle(sheetDetails, valueCell, valueCell, noStyle)
				}
			case string:
				b.setCell(sheetDetails, valueCell, v)
				if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
					b.check(b.f.SetCellHyperLink(sheetDetails, valueCell, v, "External"))
					b.setStyle(sheetDetails, valueCell, valueCell, linkStyle)
				}
			default:
				b.setCell(sheetDetails, valueCell, v)
			}
			row++
		}
		row++
	}

	b.check(b.f.SetColWidth(sheetDetails, "A", "A", 28))
	b.check(b.f.SetColWidth(sheetDetails, "B", "B", 50))
	b.freezeHeader(sheetDetails)
}

func (b *workbookBuilder) buildSummary(url string, scores score.ScoreSet, rec *scan.Record, catalog *score.Catalog) {
	b.addSheet(sheetSummary)

	titleStyle := b.newStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 18, Color: brandColor}})
	headingStyle := b.newStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14, Color: brandColor}})
	boldStyle := b.newStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	criticalStyle := b.newStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Color: "FF0000"}})
	wrapStyle := b.newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{WrapText: true},
	})

	b.check(b.f.MergeCell(sheetSummary, "A1", "B3"))
	b.setCell(sheetSummary, "A1", "Website Review Report")
	b.setStyle(sheetSummary, "A1", "A1", titleStyle)

	httpsValue := "Yes"
	if !rec.Security.HTTPS {
		httpsValue = "No (Critical)"
	}
	mobileValue := yesNo(rec.Meta.Viewport)

	metrics := []struct {
		label string
		value any
	}{
		{"Website URL", url},
		{"Scan Date", rec.Basic.ScanTimestamp},
		{"Overall Score", fmt.Sprintf("%.1f/5.0", scores.Mean())},
		{"Page Title", rec.Meta.Title},
		{"Load Time", fmt.Sprintf("%.2f seconds", rec.Basic.LoadTime)},
		{"Page Size", fmt.Sprintf("%.1f KB", rec.Performance.PageSizeKB)},
		{"Resource Requests", rec.Performance.Requests},
		{"Uses HTTPS", httpsValue},
		{"Mobile Ready", mobileValue},
		{"Critical Issues", countScores(scores, func(v int) bool { return v == 1 })},
		{"Areas Needing Improvement", countScores(scores, func(v int) bool { return v == 2 })},
		{"Well Performing Areas", countScores(scores, func(v int) bool { return v >= 4 })},
	}

	row := 5
	for _, m := range metrics {
		b.setCell(sheetSummary, cellName(1, row), m.label)
		b.setStyle(sheetSummary, cellName(1, row), cellName(1, row), boldStyle)
		b.setCell(sheetSummary, cellName(2, row), m.value)
		if m.label == "Uses HTTPS" && !rec.Security.HTTPS {
			b.setStyle(sheetSummary, cellName(2, row), cellName(2, row), criticalStyle)
		}
		row++
	}

	row += 2
	b.setCell(sheetSummary, cellName(1, row), "Top Recommendations")
	b.setStyle(sheetSummary, cellName(1, row), cellName(1, row), headingStyle)
	row++

	for _, recommendation := range TopRecommendations(scores, catalog, 3) {
		b.setCell(sheetSummary, cellName(1, row), "• "+recommendation)
		b.setStyle(sheetSummary, cellName(1, row), cellName(1, row), wrapStyle)
		row++
	}

	b.check(b.f.SetColWidth(sheetSummary, "A", "A", 25))
	b.check(b.f.SetColWidth(sheetSummary, "B", "B", 40))
}

type sectionRow struct {
	label string
	value any
}

type recordSection struct {
	title string
	rows  []sectionRow
}

// recordSections flattens the record into labeled rows grouped the way the
// record itself is.
func recordSections(rec *scan.Record) []recordSection {
	ogTags := "None"
	if len(rec.Meta.OGTags) > 0 {
		pairs := make([]string, 0, len(rec.Meta.OGTags))
		for k, v := range rec.Meta.OGTags {
			pairs = append(pairs, k+"="+v)
		}
		ogTags = strings.Join(pairs, ", ")
	}

	return []recordSection{
		{"Basic Information", []sectionRow{
			{"Load Time", fmt.Sprintf("%.2f", rec.Basic.LoadTime)},
			{"Scan Timestamp", rec.Basic.ScanTimestamp},
		}},
		{"Meta Tags Analysis", []sectionRow{
			{"Title", rec.Meta.Title},
			{"Title Length", rec.Meta.TitleLength},
			{"Description", rec.Meta.Description},
			{"Viewport", rec.Meta.Viewport},
			{"Has Favicon", rec.Meta.HasFavicon},
			{"Canonical", rec.Meta.Canonical},
			{"Og Tags", ogTags},
		}},
		{"Resources Breakdown", []sectionRow{
			{"Images", rec.Resources.Images},
			{"Stylesheets", rec.Resources.Stylesheets},
			{"Scripts", rec.Resources.Scripts},
		}},
		{"Performance Metrics", []sectionRow{
			{"Page Size Kb", fmt.Sprintf("%.1f", rec.Performance.PageSizeKB)},
			{"Requests", rec.Performance.Requests},
			{"Dom Elements", rec.Performance.DOMElements},
			{"Dom Depth", rec.Performance.DOMDepth},
		}},
		{"Security Headers", []sectionRow{
			{"Https", rec.Security.HTTPS},
			{"Hsts", rec.Security.HSTS},
			{"Content Security Policy", rec.Security.ContentSecurityPolicy},
			{"X Frame Options", rec.Security.XFrameOptions},
		}},
		{"Accessibility Checks", []sectionRow{
			{"Alt Text Images", rec.Accessibility.AltTextImages},
			{"Lang Attribute", rec.Accessibility.LangAttribute},
			{"Aria Attributes", rec.Accessibility.AriaAttribute},
		}},
	}
}

func countScores(scores score.ScoreSet, match func(int) bool) int {
	n := 0
	for _, v := range scores {
		if match(v) {
			n++
		}
	}
	return n
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func (b *workbookBuilder) addSheet(name string) {
	_, err := b.f.NewSheet(name)
	b.check(err)
}

func (b *workbookBuilder) newStyle(style *excelize.Style) int {
	id, err := b.f.NewStyle(style)
	b.check(err)
	return id
}

func (b *workbookBuilder) setCell(sheet, cell string, value any) {
	b.check(b.f.SetCellValue(sheet, cell, value))
}

func (b *workbookBuilder) setStyle(sheet, from, to string, style int) {
	b.check(b.f.SetCellStyle(sheet, from, to, style))
}

func (b *workbookBuilder) freezeHeader(sheet string) {
	b.check(b.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}))
}

func (b *workbookBuilder) check(err error) {
	if err != nil && b.err == nil {
		b.err = err
	}
}
