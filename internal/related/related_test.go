package related

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abddev09/usat-library/internal/domain"
)

func classified(id, categoryID, departmentID string) *domain.Book {
	b := &domain.Book{ID: id}
	if categoryID != "" || departmentID != "" {
		b.Classifications = []domain.Classification{
			{CategoryID: categoryID, DepartmentID: departmentID},
		}
	}
	return b
}

func ids(books []*domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestRank_TierOrdering(t *testing.T) {
	focal := classified("focal", "cat-a", "dep-x")
	catalog := []*domain.Book{
		classified("rest-1", "cat-b", "dep-y"),
		classified("dep-1", "cat-b", "dep-x"),
		classified("cat-1", "cat-a", "dep-y"),
		classified("both-1", "cat-a", "dep-x"),
		focal,
	}

	got := Rank(catalog, focal)

	assert.Equal(t, []string{"both-1", "cat-1", "dep-1", "rest-1"}, ids(got))
}

func TestRank_ExcludesFocal(t *testing.T) {
	focal := classified("focal", "cat-a", "dep-x")
	catalog := []*domain.Book{focal, classified("other", "cat-a", "dep-x")}

	got := Rank(catalog, focal)

	assert.NotContains(t, ids(got), "focal")
	assert.Equal(t, []string{"other"}, ids(got))
}

func TestRank_StableWithinTiers(t *testing.T) {
	focal := classified("focal", "cat-a", "dep-x")
	catalog := []*domain.Book{focal}
	for i := range 5 {
		catalog = append(catalog, classified(fmt.Sprintf("cat-%d", i), "cat-a", "dep-other"))
	}

	got := Rank(catalog, focal)

	assert.Equal(t, []string{"cat-0", "cat-1", "cat-2", "cat-3", "cat-4"}, ids(got))
}

func TestRank_UnclassifiedFocalPreservesOrder(t *testing.T) {
	focal := classified("focal", "", "")
	catalog := []*domain.Book{
		classified("a", "cat-a", "dep-x"),
		focal,
		classified("b", "cat-b", "dep-y"),
		classified("c", "", ""),
	}

	got := Rank(catalog, focal)

	// No candidate can share anything with an unclassified focal, so the
	// whole list lands in the last tier in catalog order.
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestRank_CapsAtTwelve(t *testing.T) {
	focal := classified("focal", "cat-a", "dep-x")
	catalog := []*domain.Book{focal}
	for i := range 30 {
		catalog = append(catalog, classified(fmt.Sprintf("b-%d", i), "cat-a", "dep-x"))
	}

	got := Rank(catalog, focal)

	assert.Len(t, got, MaxRelated)
}

func TestRank_TinyCatalog(t *testing.T) {
	focal := classified("focal", "cat-a", "dep-x")

	assert.Empty(t, Rank(nil, focal))
	assert.Empty(t, Rank([]*domain.Book{focal}, focal))
	assert.Empty(t, Rank([]*domain.Book{focal}, nil))
}

func TestRank_MultiPairCandidateUsesHighestTier(t *testing.T) {
	focal := classified("focal", "cat-a", "dep-x")
	multi := &domain.Book{
		ID: "multi",
		Classifications: []domain.Classification{
			{CategoryID: "cat-b", DepartmentID: "dep-y"},
			{CategoryID: "cat-a", DepartmentID: "dep-x"},
		},
	}
	catalog := []*domain.Book{
		classified("cat-only", "cat-a", "dep-y"),
		multi,
		focal,
	}

	got := Rank(catalog, focal)

	assert.Equal(t, []string{"multi", "cat-only"}, ids(got))
}

// Fifteen-book catalog exercising every tier at once: four pair matches,
// three category matches, two department matches, the remainder unrelated,
// truncated at the cap.
func TestRank_FullScenario(t *testing.T) {
	focal := classified("focal", "cat-a", "dep-x")
	catalog := []*domain.Book{focal}
	for i := range 4 {
		catalog = append(catalog, classified(fmt.Sprintf("both-%d", i), "cat-a", "dep-x"))
	}
	for i := range 3 {
		catalog = append(catalog, classified(fmt.Sprintf("cat-%d", i), "cat-a", "dep-z"))
	}
	for i := range 2 {
		catalog = append(catalog, classified(fmt.Sprintf("dep-%d", i), "cat-z", "dep-x"))
	}
	for i := range 5 {
		catalog = append(catalog, classified(fmt.Sprintf("rest-%d", i), "cat-z", "dep-z"))
	}

	got := Rank(catalog, focal)

	require.Len(t, got, MaxRelated)
	assert.Equal(t, []string{
		"both-0", "both-1", "both-2", "both-3",
		"cat-0", "cat-1", "cat-2",
		"dep-0", "dep-1",
		"rest-0", "rest-1", "rest-2",
	}, ids(got))
}
