// Package filter implements multi-select classification filtering and
// fixed-size pagination for catalog listings.
package filter

import (
	"sort"
	"strings"

	"github.com/Abddev09/usat-library/internal/domain"
)

// PerPage is the fixed page size for filtered listings.
const PerPage = 12

// Selection is a set of chosen category and department IDs. An empty ID set
// places no constraint on that axis.
type Selection struct {
	CategoryIDs   []string `json:"category_ids,omitempty"`
	DepartmentIDs []string `json:"department_ids,omitempty"`
}

// Empty reports whether the selection constrains nothing.
func (s Selection) Empty() bool {
	return len(s.CategoryIDs) == 0 && len(s.DepartmentIDs) == 0
}

// Key returns a canonical cache key for the selection. Order of the chosen
// IDs does not affect the key.
func (s Selection) Key() string {
	cats := append([]string(nil), s.CategoryIDs...)
	deps := append([]string(nil), s.DepartmentIDs...)
	sort.Strings(cats)
	sort.Strings(deps)

	var b strings.Builder
	b.WriteString("c:")
	b.WriteString(strings.Join(cats, ","))
	b.WriteString("|d:")
	b.WriteString(strings.Join(deps, ","))
	return b.String()
}

// Matches reports whether the book satisfies the selection: at least one of
// its classification pairs must match the chosen categories (or all, when
// none are chosen) and the chosen departments (or all) at the same time.
func (s Selection) Matches(b *domain.Book) bool {
	if s.Empty() {
		return true
	}
	if len(b.Classifications) == 0 {
		return false
	}
	for _, c := range b.Classifications {
		if s.pairMatches(c) {
			return true
		}
	}
	return false
}

func (s Selection) pairMatches(c domain.Classification) bool {
	if len(s.CategoryIDs) > 0 && !contains(s.CategoryIDs, c.CategoryID) {
		return false
	}
	if len(s.DepartmentIDs) > 0 && !contains(s.DepartmentIDs, c.DepartmentID) {
		return false
	}
	return true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Apply returns the books matching the selection, preserving catalog order.
// Apply is pure; Memo adds caching on top.
func Apply(catalog []*domain.Book, sel Selection) []*domain.Book {
	if sel.Empty() {
		return catalog
	}
	var out []*domain.Book
	for _, b := range catalog {
		if b != nil && sel.Matches(b) {
			out = append(out, b)
		}
	}
	return out
}

// Page is one fixed-size window over a filtered result set.
type Page struct {
	Items      []*domain.Book `json:"items"`
	Number     int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
}

// Paginate slices items into the numbered page. Pages are 1-based; numbers
// past the end yield an empty page with the totals intact.
func Paginate(items []*domain.Book, page int) Page {
	if page < 1 {
		page = 1
	}
	total := len(items)
	totalPages := (total + PerPage - 1) / PerPage

	start := (page - 1) * PerPage
	if start > total {
		start = total
	}
	end := start + PerPage
	if end > total {
		end = total
	}

	return Page{
		Items:      items[start:end],
		Number:     page,
		PerPage:    PerPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
