package store

import (
	"context"
	"errors"
	"time"

	"github.com/Abddev09/usat-library/internal/domain"
)

// SaveIdentity registers or replaces the stored identity for a user.
func (s *Store) SaveIdentity(ctx context.Context, identity *domain.Identity) error {
	if identity.ID == "" {
		return ErrInvalidInput.WithMessage("identity requires an id")
	}
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = time.Now()
	}

	err := s.Identities.Update(ctx, identity.ID, identity)
	if errors.Is(err, ErrNotFound) {
		return s.Identities.Create(ctx, identity.ID, identity)
	}
	return err
}

// GetIdentity fetches the stored identity for a user.
// Returns ErrNotFound when none is registered.
func (s *Store) GetIdentity(ctx context.Context, userID string) (*domain.Identity, error) {
	return s.Identities.Get(ctx, userID)
}

// GetIdentityByPhone looks an identity up by phone number, ignoring
// formatting differences.
func (s *Store) GetIdentityByPhone(ctx context.Context, phone string) (*domain.Identity, error) {
	return s.Identities.GetByIndex(ctx, "phone", phone)
}

// DeleteIdentity removes the stored identity for a user. Idempotent.
func (s *Store) DeleteIdentity(ctx context.Context, userID string) error {
	return s.Identities.Delete(ctx, userID)
}
