package service

import (
	"context"
	"log/slog"

	"github.com/Abddev09/usat-library/internal/domain"
	"github.com/Abddev09/usat-library/internal/errors"
	"github.com/Abddev09/usat-library/internal/store"
	"github.com/Abddev09/usat-library/internal/validation"
)

// SessionService registers and resolves stored identities. Authentication
// happens elsewhere; this service only mirrors the identity the client
// presents so cart and profile operations can be gated on it.
type SessionService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewSessionService creates a session service.
func NewSessionService(st *store.Store, v *validation.Validator, logger *slog.Logger) *SessionService {
	return &SessionService{
		store:     st,
		validator: v,
		logger:    logger,
	}
}

// RegisterInput is the payload for registering an identity.
type RegisterInput struct {
	UserID      string `json:"user_id" validate:"required"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=200"`
	Phone       string `json:"phone" validate:"omitempty,min=7,max=20"`
	Token       string `json:"token" validate:"omitempty"`
}

// Register stores an identity, replacing any previous one for the user.
func (s *SessionService) Register(ctx context.Context, input RegisterInput) (*domain.Identity, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	identity := &domain.Identity{
		ID:          input.UserID,
		DisplayName: input.DisplayName,
		Phone:       input.Phone,
		Token:       input.Token,
	}
	if err := s.store.SaveIdentity(ctx, identity); err != nil {
		return nil, err
	}

	s.logger.Info("identity registered",
		slog.String("user_id", identity.ID))
	return identity, nil
}

// Current returns the stored identity of a user.
func (s *SessionService) Current(ctx context.Context, userID string) (*domain.Identity, error) {
	if userID == "" {
		return nil, errors.MissingIdentity("no identity registered")
	}
	identity, err := s.store.GetIdentity(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.MissingIdentity("no identity registered")
	}
	return identity, err
}

// Logout removes the stored identity and the user's cart.
func (s *SessionService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	if err := s.store.ClearCart(ctx, userID); err != nil {
		return err
	}
	if err := s.store.DeleteIdentity(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("identity removed",
		slog.String("user_id", userID))
	return nil
}
