package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Abddev09/usat-library/internal/domain"
	"github.com/Abddev09/usat-library/internal/errors"
	"github.com/Abddev09/usat-library/internal/id"
	"github.com/Abddev09/usat-library/internal/metrics"
	"github.com/Abddev09/usat-library/internal/notify"
	"github.com/Abddev09/usat-library/internal/store"
)

// CartService manages per-user book reservations.
type CartService struct {
	store   *store.Store
	catalog *CatalogService
	emitter Emitter
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewCartService creates a cart service.
func NewCartService(st *store.Store, catalog *CatalogService, emitter Emitter, m *metrics.Metrics, logger *slog.Logger) *CartService {
	return &CartService{
		store:   st,
		catalog: catalog,
		emitter: emitter,
		metrics: m,
		logger:  logger,
	}
}

// AddToCart reserves a book for a user. The returned duplicate flag is true
// when the user already held the book; the stored entry is left untouched
// and no event is emitted.
func (s *CartService) AddToCart(ctx context.Context, userID, bookID string) (*domain.CartEntry, bool, error) {
	// 1. The operation requires a registered identity.
	if err := s.requireIdentity(ctx, userID); err != nil {
		s.metrics.IncCart("add", "missing_identity")
		return nil, false, err
	}

	// 2. The book must exist in the current catalog.
	book, err := s.catalog.GetBook(ctx, bookID)
	if err != nil {
		s.metrics.IncCart("add", "error")
		return nil, false, err
	}

	// 3. Persist; the store's (user, book) key is the idempotence guard.
	entryID, err := id.Generate("cart")
	if err != nil {
		return nil, false, err
	}
	entry := &domain.CartEntry{
		ID:       entryID,
		UserID:   userID,
		BookID:   bookID,
		Title:    book.Title,
		Author:   book.Author,
		CoverURL: book.CoverURL,
		AddedAt:  time.Now(),
	}
	if err := s.store.AddCartEntry(ctx, entry); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			s.metrics.IncCart("add", "duplicate")
			existing, getErr := s.store.GetCartEntry(ctx, userID, bookID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, true, nil
		}
		s.metrics.IncCart("add", "error")
		return nil, false, err
	}

	// 4. Broadcast the new cart state to the user's sessions.
	s.emitCartChanged(ctx, userID, "added", bookID)

	s.metrics.IncCart("add", "ok")
	s.logger.Info("book added to cart",
		slog.String("user_id", userID),
		slog.String("book_id", bookID))

	return entry, false, nil
}

// RemoveFromCart drops a user's reservation of a book. Idempotent.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, bookID string) error {
	if err := s.requireIdentity(ctx, userID); err != nil {
		s.metrics.IncCart("remove", "missing_identity")
		return err
	}

	if err := s.store.RemoveCartEntry(ctx, userID, bookID); err != nil {
		s.metrics.IncCart("remove", "error")
		return err
	}

	s.emitCartChanged(ctx, userID, "removed", bookID)
	s.metrics.IncCart("remove", "ok")
	return nil
}

// ListCart returns a user's cart entries.
func (s *CartService) ListCart(ctx context.Context, userID string) ([]*domain.CartEntry, error) {
	if err := s.requireIdentity(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListCartEntries(ctx, userID)
}

// ClearCart removes every reservation a user holds.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.requireIdentity(ctx, userID); err != nil {
		return err
	}
	if err := s.store.ClearCart(ctx, userID); err != nil {
		s.metrics.IncCart("clear", "error")
		return err
	}

	s.emitCartChanged(ctx, userID, "cleared", "")
	s.metrics.IncCart("clear", "ok")
	return nil
}

// requireIdentity rejects cart operations from sessions without a
// registered identity.
func (s *CartService) requireIdentity(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.MissingIdentity("sign in to manage your cart")
	}
	_, err := s.store.GetIdentity(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return errors.MissingIdentity("sign in to manage your cart")
	}
	return err
}

// emitCartChanged broadcasts the user's full cart state after a mutation.
func (s *CartService) emitCartChanged(ctx context.Context, userID, action, bookID string) {
	entries, err := s.store.ListCartEntries(ctx, userID)
	if err != nil {
		s.logger.Warn("could not list cart for broadcast",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return
	}
	s.emitter.Emit(notify.NewCartChangedEvent(userID, action, bookID, entries))
}
