package filter

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Abddev09/usat-library/internal/domain"
)

// memoSize bounds how many distinct (snapshot, selection) results are kept.
const memoSize = 256

// Memo caches Apply results per catalog snapshot version and selection.
// Filtering is pure, so a cached result stays valid until the snapshot it
// was computed from is replaced; stale versions age out of the LRU.
type Memo struct {
	cache *lru.Cache[string, []*domain.Book]
}

// NewMemo creates a memoized filter.
func NewMemo() (*Memo, error) {
	cache, err := lru.New[string, []*domain.Book](memoSize)
	if err != nil {
		return nil, err
	}
	return &Memo{cache: cache}, nil
}

// Apply returns the filtered view of catalog, reusing a prior result when
// the same snapshot version and selection were seen before.
func (m *Memo) Apply(version string, catalog []*domain.Book, sel Selection) []*domain.Book {
	key := version + "#" + sel.Key()
	if cached, ok := m.cache.Get(key); ok {
		return cached
	}
	out := Apply(catalog, sel)
	m.cache.Add(key, out)
	return out
}

// Len returns the number of cached results.
func (m *Memo) Len() int {
	return m.cache.Len()
}
