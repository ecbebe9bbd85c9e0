package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sitegrade/sitegrade/internal/scan"
	"github.com/sitegrade/sitegrade/internal/score"
)

func fullScores() score.ScoreSet {
	return score.ScoreSet{
		score.CategoryPerformance:      2,
		score.CategorySecurity:         5,
		score.CategorySEO:              3,
		score.CategoryMobile:           4,
		score.CategoryFirstImpressions: 4,
		score.CategoryContentQuality:   3,
		score.CategoryAccessibility:    1,
	}
}

func TestBuildChartData_FollowsReportOrder(t *testing.T) {
	t.Parallel()

	cd := BuildChartData(fullScores())

	require.Equal(t, score.Scored, cd.Labels)
	require.Equal(t, []int{2, 5, 3, 4, 4, 3, 1}, cd.Values)
	require.Len(t, cd.Colors, 5)
}

func TestBuildChartData_SkipsMissingCategories(t *testing.T) {
	t.Parallel()

	cd := BuildChartData(score.ScoreSet{score.CategorySecurity: 5})

	require.Equal(t, []string{score.CategorySecurity}, cd.Labels)
	require.Equal(t, []int{5}, cd.Values)
}

func TestPriority(t *testing.T) {
	t.Parallel()

	require.Equal(t, "High", Priority(1))
	require.Equal(t, "High", Priority(2))
	require.Equal(t, "Medium", Priority(3))
	require.Equal(t, "Low", Priority(4))
	require.Equal(t, "Low", Priority(5))
}

func TestDetails_Performance(t *testing.T) {
	t.Parallel()

	rec := scan.NewRecord()
	rec.Basic.LoadTime = 1.234
	rec.Performance.PageSizeKB = 512.34
	rec.Performance.Requests = 18
	rec.Performance.DOMDepth = 12

	got := Details(score.CategoryPerformance, rec)
	require.Equal(t, "Load Time: 1.23s\nPage Size: 512.3KB\nRequests: 18\nDOM Depth: 12", got)
}

func TestDetails_SecurityHidesHSTSWithoutHTTPS(t *testing.T) {
	t.Parallel()

	rec := scan.NewRecord()
	got := Details(score.CategorySecurity, rec)
	require.Equal(t, "HTTPS: No\nCSP Header: No", got)

	rec.Security.HTTPS = true
	rec.Security.HSTS = true
	got = Details(score.CategorySecurity, rec)
	require.Equal(t, "HTTPS: Yes\nHSTS: Yes\nCSP Header: No", got)
}

func TestDetails_UnscoredCategoryIsEmpty(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Details(score.CategoryAnalytics, scan.NewRecord()))
}

func TestTopRecommendations_WorstFirst(t *testing.T) {
	t.Parallel()

	catalog := score.DefaultCatalog()
	got := TopRecommendations(fullScores(), catalog, 3)

	require.Len(t, got, 3)
	worst, err := catalog.Recommendation(score.CategoryAccessibility, 1)
	require.NoError(t, err)
	require.Equal(t, worst, got[0])
	second, err := catalog.Recommendation(score.CategoryPerformance, 2)
	require.NoError(t, err)
	require.Equal(t, second, got[1])
}

func TestTopRecommendations_FewerThanRequested(t *testing.T) {
	t.Parallel()

	got := TopRecommendations(score.ScoreSet{score.CategorySEO: 3}, score.DefaultCatalog(), 3)
	require.Len(t, got, 1)
}

func TestFilename(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	require.Equal(t, "Website_Review_20250314_092653.xlsx", Filename(at))
}
