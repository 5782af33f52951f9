package filter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abddev09/usat-library/internal/domain"
)

func book(id string, pairs ...[2]string) *domain.Book {
	b := &domain.Book{ID: id}
	for _, p := range pairs {
		b.Classifications = append(b.Classifications, domain.Classification{
			CategoryID:   p[0],
			DepartmentID: p[1],
		})
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

func TestSelection_EmptyMatchesAll(t *testing.T) {
	catalog := []*domain.Book{
		book("a", [2]string{"cat-1", "dep-1"}),
		book("b"), // unclassified
	}

	got := Apply(catalog, Selection{})

	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestSelection_CategoryOnly(t *testing.T) {
	catalog := []*domain.Book{
		book("a", [2]string{"cat-1", "dep-1"}),
		book("b", [2]string{"cat-2", "dep-1"}),
		book("c", [2]string{"cat-1", "dep-2"}),
	}

	got := Apply(catalog, Selection{CategoryIDs: []string{"cat-1"}})

	assert.Equal(t, []string{"a", "c"}, ids(got))
}

func TestSelection_BothAxesMustMatchSamePair(t *testing.T) {
	// Book "crossed" carries the selected category and the selected
	// department, but in different pairs.
	catalog := []*domain.Book{
		book("hit", [2]string{"cat-1", "dep-1"}),
		book("crossed", [2]string{"cat-1", "dep-2"}, [2]string{"cat-2", "dep-1"}),
	}
	sel := Selection{CategoryIDs: []string{"cat-1"}, DepartmentIDs: []string{"dep-1"}}

	got := Apply(catalog, sel)

	assert.Equal(t, []string{"hit"}, ids(got))
}

func TestSelection_MultiSelectIsUnion(t *testing.T) {
	catalog := []*domain.Book{
		book("a", [2]string{"cat-1", "dep-1"}),
		book("b", [2]string{"cat-2", "dep-1"}),
		book("c", [2]string{"cat-3", "dep-1"}),
	}

	got := Apply(catalog, Selection{CategoryIDs: []string{"cat-1", "cat-3"}})

	assert.Equal(t, []string{"a", "c"}, ids(got))
}

func TestSelection_UnclassifiedExcludedByAnyConstraint(t *testing.T) {
	catalog := []*domain.Book{book("bare")}

	got := Apply(catalog, Selection{DepartmentIDs: []string{"dep-1"}})

	assert.Empty(t, got)
}

func TestSelection_Key_OrderIndependent(t *testing.T) {
	a := Selection{CategoryIDs: []string{"c2", "c1"}, DepartmentIDs: []string{"d1"}}
	b := Selection{CategoryIDs: []string{"c1", "c2"}, DepartmentIDs: []string{"d1"}}
	c := Selection{CategoryIDs: []string{"c1"}, DepartmentIDs: []string{"d1"}}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestPaginate_FixedPageSize(t *testing.T) {
	var items []*domain.Book
	for i := range 30 {
		items = append(items, book(fmt.Sprintf("b-%d", i)))
	}

	first := Paginate(items, 1)
	last := Paginate(items, 3)

	assert.Len(t, first.Items, PerPage)
	assert.Equal(t, "b-0", first.Items[0].ID)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 30, first.TotalItems)

	assert.Len(t, last.Items, 6)
	assert.Equal(t, "b-24", last.Items[0].ID)
}

func TestPaginate_PastEndIsEmpty(t *testing.T) {
	items := []*domain.Book{book("a")}

	page := Paginate(items, 5)

	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalItems)
}

func TestPaginate_ZeroPageCoercedToFirst(t *testing.T) {
	items := []*domain.Book{book("a")}

	page := Paginate(items, 0)

	assert.Equal(t, 1, page.Number)
	assert.Len(t, page.Items, 1)
}

func TestMemo_ReusesResultPerVersion(t *testing.T) {
	memo, err := NewMemo()
	require.NoError(t, err)

	catalog := []*domain.Book{book("a", [2]string{"cat-1", "dep-1"})}
	sel := Selection{CategoryIDs: []string{"cat-1"}}

	first := memo.Apply("v1", catalog, sel)
	second := memo.Apply("v1", catalog, sel)

	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, 1, memo.Len())

	// A new snapshot version computes fresh.
	memo.Apply("v2", catalog, sel)
	assert.Equal(t, 2, memo.Len())
}
