package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Abddev09/usat-library/internal/domain"
)

// cartKey builds the primary key for a cart entry. One key per
// (userID, bookID) pair is what makes repeated adds collide.
func cartKey(userID, bookID string) string {
	return userID + "/" + bookID
}

// AddCartEntry persists a new cart entry. Returns ErrAlreadyExists when the
// user already holds an entry for the book; the stored entry is untouched.
func (s *Store) AddCartEntry(ctx context.Context, entry *domain.CartEntry) error {
	if entry.UserID == "" || entry.BookID == "" {
		return ErrInvalidInput.WithMessage("cart entry requires user and book")
	}
	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now()
	}
	return s.CartEntries.Create(ctx, cartKey(entry.UserID, entry.BookID), entry)
}

// GetCartEntry fetches one user's entry for a book.
func (s *Store) GetCartEntry(ctx context.Context, userID, bookID string) (*domain.CartEntry, error) {
	return s.CartEntries.Get(ctx, cartKey(userID, bookID))
}

// RemoveCartEntry deletes one user's entry for a book. Idempotent.
func (s *Store) RemoveCartEntry(ctx context.Context, userID, bookID string) error {
	return s.CartEntries.Delete(ctx, cartKey(userID, bookID))
}

// ListCartEntries returns all entries for a user in key order.
func (s *Store) ListCartEntries(ctx context.Context, userID string) ([]*domain.CartEntry, error) {
	var out []*domain.CartEntry
	for entry, err := range s.CartEntries.ListPrefix(ctx, userID+"/") {
		if err != nil {
			return nil, fmt.Errorf("list cart entries: %w", err)
		}
		out = append(out, entry)
	}
	return out, nil
}

// ClearCart removes every entry for a user.
func (s *Store) ClearCart(ctx context.Context, userID string) error {
	entries, err := s.ListCartEntries(ctx, userID)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := s.RemoveCartEntry(ctx, userID, entry.BookID); err != nil {
			return err
		}
	}
	return nil
}
