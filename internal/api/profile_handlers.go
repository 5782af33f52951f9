package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Abddev09/usat-library/internal/domain"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile",
		Summary:     "Get profile",
		Description: "Returns the user's identity and partitioned order history",
		Tags:        []string{"Profile"},
	}, s.handleGetProfile)
}

type GetProfileInput struct {
	UserID string `header:"X-User-ID" doc:"Registered user ID"`
}

type ProfileResponse struct {
	Identity       IdentityResponse `json:"identity" doc:"Stored identity"`
	ActiveOrders   []*domain.Order  `json:"active_orders" doc:"Orders awaiting pickup"`
	ArchivedOrders []*domain.Order  `json:"archived_orders" doc:"Finished orders"`
}

type GetProfileOutput struct {
	Body ProfileResponse
}

func (s *Server) handleGetProfile(ctx context.Context, input *GetProfileInput) (*GetProfileOutput, error) {
	profile, err := s.services.Profile.GetProfile(ctx, input.UserID)
	if err != nil {
		return nil, huma.Error401Unauthorized("profile requires a registered identity", err)
	}

	return &GetProfileOutput{Body: ProfileResponse{
		Identity: IdentityResponse{
			UserID:      profile.Identity.ID,
			DisplayName: profile.Identity.DisplayName,
			Phone:       profile.Identity.Phone,
			CreatedAt:   profile.Identity.CreatedAt,
		},
		ActiveOrders:   profile.ActiveOrders,
		ArchivedOrders: profile.ArchivedOrders,
	}}, nil
}
