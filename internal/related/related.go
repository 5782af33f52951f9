// Package related ranks catalog books by classification affinity to a focal
// book. The ranking backs the "related books" strip on detail views.
package related

import "github.com/Abddev09/usat-library/internal/domain"

// MaxRelated caps the size of a related list.
const MaxRelated = 12

// Rank returns up to MaxRelated books from catalog ordered by affinity to
// focal. Candidates fall into four disjoint tiers: shared category and
// department pair, shared category, shared department, everything else.
// Each candidate lands in the highest tier it qualifies for; within a tier
// the catalog's order is preserved. The focal book itself never appears.
//
// Rank is pure: it never mutates catalog and yields the same output for the
// same input, so callers may memoize per (catalog version, focal).
func Rank(catalog []*domain.Book, focal *domain.Book) []*domain.Book {
	if focal == nil || len(catalog) == 0 {
		return nil
	}

	var both, category, department, rest []*domain.Book
	for _, b := range catalog {
		if b == nil || b.ID == focal.ID {
			continue
		}
		switch {
		case b.SharesCategoryAndDepartment(focal):
			both = append(both, b)
		case b.SharesCategory(focal):
			category = append(category, b)
		case b.SharesDepartment(focal):
			department = append(department, b)
		default:
			rest = append(rest, b)
		}
	}

	ranked := make([]*domain.Book, 0, len(catalog)-1)
	ranked = append(ranked, both...)
	ranked = append(ranked, category...)
	ranked = append(ranked, department...)
	ranked = append(ranked, rest...)

	if len(ranked) > MaxRelated {
		ranked = ranked[:MaxRelated]
	}
	return ranked
}
