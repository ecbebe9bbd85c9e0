package score

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_CoversScoredCategories(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	for _, name := range Scored {
		for score := 1; score <= 5; score++ {
			text, err := catalog.Recommendation(name, score)
			require.NoError(t, err)
			require.NotEmpty(t, text)
		}
	}
}

func TestCatalog_Recommendation(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()

	text, err := catalog.Recommendation(CategorySecurity, 5)
	require.NoError(t, err)
	require.Equal(t, "Fully secure and compliant. No changes needed.", text)

	_, err = catalog.Recommendation("Not A Category", 3)
	require.ErrorIs(t, err, ErrUnknownCategory)

	_, err = catalog.Recommendation(CategorySecurity, 0)
	require.Error(t, err)
	_, err = catalog.Recommendation(CategorySecurity, 6)
	require.Error(t, err)
}

func TestCatalog_CategoriesPreservesOrder(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	cats := catalog.Categories()

	require.Len(t, cats, 9)
	require.Equal(t, CategoryFirstImpressions, cats[0].Name)
	require.Equal(t, CategoryAnalytics, cats[8].Name)
}
