package service

import (
	"context"
	"log/slog"

	"github.com/Abddev09/usat-library/internal/domain"
	"github.com/Abddev09/usat-library/internal/errors"
	"github.com/Abddev09/usat-library/internal/store"
)

// Profile is a user's identity together with their order history, split
// into orders needing attention and finished ones.
type Profile struct {
	Identity       *domain.Identity `json:"identity"`
	ActiveOrders   []*domain.Order  `json:"active_orders"`
	ArchivedOrders []*domain.Order  `json:"archived_orders"`
}

// ProfileService joins upstream order history with the catalog and the
// stored identity.
type ProfileService struct {
	store    *store.Store
	upstream Upstream
	catalog  *CatalogService
	logger   *slog.Logger
}

// NewProfileService creates a profile service.
func NewProfileService(st *store.Store, upstream Upstream, catalog *CatalogService, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:    st,
		upstream: upstream,
		catalog:  catalog,
		logger:   logger,
	}
}

// GetProfile returns the identity and partitioned order history of a user.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	// 1. The profile view requires a registered identity.
	identity, err := s.store.GetIdentity(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.MissingIdentity("sign in to view your profile")
	}
	if err != nil {
		return nil, err
	}

	// 2. Fetch the user's orders from the upstream.
	orders, err := s.upstream.Orders(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstream, "could not load order history")
	}

	// 3. Join orders with catalog books for display. A missing book leaves
	// the order in the list with no book payload.
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	profile := &Profile{Identity: identity}
	for _, order := range orders {
		if book, ok := snap.Book(order.BookID); ok {
			order.Book = book
		}
		if order.Status.IsActive() {
			profile.ActiveOrders = append(profile.ActiveOrders, order)
		} else {
			profile.ArchivedOrders = append(profile.ArchivedOrders, order)
		}
	}

	s.logger.Debug("profile assembled",
		slog.String("user_id", userID),
		slog.Int("active", len(profile.ActiveOrders)),
		slog.Int("archived", len(profile.ArchivedOrders)))

	return profile, nil
}
