package catalog

import (
	"time"

	"github.com/Abddev09/usat-library/internal/domain"
)

// parseUpstreamTime accepts the timestamp shapes the upstream has been seen
// to emit. A zero time is returned for anything unparseable.
func parseUpstreamTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// resolveName picks the localized name from a raw record, preferring the
// per-locale fields over the plain name.
func resolveName(r *rawNamed, locale domain.Locale) string {
	if r == nil {
		return ""
	}
	if r.NameUZ != "" || r.NameRU != "" {
		return domain.LocalizedText{UZ: r.NameUZ, RU: r.NameRU}.Resolve(locale)
	}
	return r.Name
}

// normalizeBookItem converts one upstream book item into a domain book.
// Records without a nested book payload are dropped.
func normalizeBookItem(item *rawBookItem, locale domain.Locale) *domain.Book {
	if item == nil || item.Book == nil {
		return nil
	}

	available := item.Book.Books
	if available == 0 {
		available = item.Book.BookCount
	}

	b := &domain.Book{
		ID:              item.ID,
		Title:           item.Book.Name,
		Author:          resolveName(item.Book.Auther, locale),
		Year:            item.Book.Year,
		PageCount:       item.Book.Page,
		AvailableCount:  available,
		Description:     item.Book.Description,
		Language:        resolveName(item.Language, locale),
		Alphabet:        resolveName(item.Alphabet, locale),
		Status:          resolveName(item.Status, locale),
		Classifications: normalizePairs(item, locale),
		CreatedAt:       parseUpstreamTime(item.Book.CreatedAt),
		UpdatedAt:       parseUpstreamTime(item.UpdatedAt),
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = parseUpstreamTime(item.CreatedAt)
	}
	if item.Book.Image != nil {
		b.CoverURL = item.Book.Image.URL
	}
	if item.PDFFile != nil {
		b.PDFURL = item.PDFFile.FileURL
		b.PDFSize = item.PDFFile.FileSize
	}
	return b
}

// normalizePairs flattens the upstream's two classification shapes into the
// canonical pair slice. The single-pair field, when present alongside the
// array, is treated as one more pair and deduplicated.
func normalizePairs(item *rawBookItem, locale domain.Locale) []domain.Classification {
	raw := make([]rawPair, 0, len(item.BookCategoryKafedras)+1)
	raw = append(raw, item.BookCategoryKafedras...)
	if item.BookCategoryKafedra != nil {
		raw = append(raw, *item.BookCategoryKafedra)
	}

	seen := make(map[[2]string]bool, len(raw))
	var out []domain.Classification
	for _, p := range raw {
		categoryID := p.CategoryID
		if categoryID == "" && p.Category != nil {
			categoryID = p.Category.ID
		}
		departmentID := p.KafedraID
		if departmentID == "" && p.Kafedra != nil {
			departmentID = p.Kafedra.ID
		}
		if categoryID == "" && departmentID == "" {
			continue
		}

		key := [2]string{categoryID, departmentID}
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, domain.Classification{
			CategoryID:     categoryID,
			DepartmentID:   departmentID,
			CategoryName:   resolveName(p.Category, locale),
			DepartmentName: resolveName(p.Kafedra, locale),
		})
	}
	return out
}
