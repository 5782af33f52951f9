package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/Abddev09/usat-library/internal/domain"
)

// Snapshot is one immutable fetch of the upstream catalog. Consumers index
// it by version: derived results (rankings, filtered views) cached against
// a version stay valid until a newer snapshot replaces it.
type Snapshot struct {
	Version     string
	Books       []*domain.Book
	Categories  []domain.Category
	Departments []domain.Department
	FetchedAt   time.Time

	byID map[string]*domain.Book
}

// NewSnapshot builds a snapshot with a fresh version id.
func NewSnapshot(books []*domain.Book, categories []domain.Category, departments []domain.Department) *Snapshot {
	byID := make(map[string]*domain.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}
	return &Snapshot{
		Version:     uuid.NewString(),
		Books:       books,
		Categories:  categories,
		Departments: departments,
		FetchedAt:   time.Now(),
		byID:        byID,
	}
}

// Book looks up a book by ID.
func (s *Snapshot) Book(id string) (*domain.Book, bool) {
	b, ok := s.byID[id]
	return b, ok
}

// NewBooks returns the books added within the new-arrival window, in
// catalog order.
func (s *Snapshot) NewBooks(now time.Time) []*domain.Book {
	var out []*domain.Book
	for _, b := range s.Books {
		if b.IsNew(now) {
			out = append(out, b)
		}
	}
	return out
}

// Age returns how long ago the snapshot was fetched.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.FetchedAt)
}
