package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Abddev09/usat-library/internal/service"
)

func (s *Server) registerSessionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "registerSession",
		Method:      http.MethodPost,
		Path:        "/api/v1/session",
		Summary:     "Register identity",
		Description: "Stores the presented identity, replacing any previous one",
		Tags:        []string{"Session"},
	}, s.handleRegisterSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/api/v1/session",
		Summary:     "Get identity",
		Description: "Returns the stored identity of the presenting user",
		Tags:        []string{"Session"},
	}, s.handleGetSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodDelete,
		Path:        "/api/v1/session",
		Summary:     "Log out",
		Description: "Removes the stored identity and clears the user's cart",
		Tags:        []string{"Session"},
	}, s.handleLogout)
}

// === DTOs ===

type RegisterSessionInput struct {
	Body struct {
		UserID      string `json:"user_id" doc:"Client-assigned user ID"`
		DisplayName string `json:"display_name" doc:"Name shown in the UI"`
		Phone       string `json:"phone,omitempty" doc:"Contact phone, any formatting"`
		Token       string `json:"token,omitempty" doc:"Opaque backend session token"`
	}
}

type IdentityResponse struct {
	UserID      string    `json:"user_id" doc:"User ID"`
	DisplayName string    `json:"display_name" doc:"Display name"`
	Phone       string    `json:"phone,omitempty" doc:"Contact phone"`
	CreatedAt   time.Time `json:"created_at" doc:"First registration time"`
}

type SessionOutput struct {
	Body IdentityResponse
}

type SessionInput struct {
	UserID string `header:"X-User-ID" doc:"Registered user ID"`
}

// === Handlers ===

func (s *Server) handleRegisterSession(ctx context.Context, input *RegisterSessionInput) (*SessionOutput, error) {
	identity, err := s.services.Session.Register(ctx, service.RegisterInput{
		UserID:      input.Body.UserID,
		DisplayName: input.Body.DisplayName,
		Phone:       input.Body.Phone,
		Token:       input.Body.Token,
	})
	if err != nil {
		return nil, huma.Error400BadRequest("failed to register identity", err)
	}

	return &SessionOutput{Body: IdentityResponse{
		UserID:      identity.ID,
		DisplayName: identity.DisplayName,
		Phone:       identity.Phone,
		CreatedAt:   identity.CreatedAt,
	}}, nil
}

func (s *Server) handleGetSession(ctx context.Context, input *SessionInput) (*SessionOutput, error) {
	identity, err := s.services.Session.Current(ctx, input.UserID)
	if err != nil {
		return nil, huma.Error401Unauthorized("no identity registered", err)
	}

	return &SessionOutput{Body: IdentityResponse{
		UserID:      identity.ID,
		DisplayName: identity.DisplayName,
		Phone:       identity.Phone,
		CreatedAt:   identity.CreatedAt,
	}}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *SessionInput) (*struct{}, error) {
	if err := s.services.Session.Logout(ctx, input.UserID); err != nil {
		return nil, huma.Error500InternalServerError("failed to log out", err)
	}
	return &struct{}{}, nil
}
