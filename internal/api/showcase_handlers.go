package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Abddev09/usat-library/internal/carousel"
	"github.com/Abddev09/usat-library/internal/domain"
)

func (s *Server) registerShowcaseRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getShowcase",
		Method:      http.MethodGet,
		Path:        "/api/v1/showcase",
		Summary:     "Get showcase",
		Description: "Returns the current slide state and the books on the current slide",
		Tags:        []string{"Showcase"},
	}, s.handleGetShowcase)

	huma.Register(s.api, huma.Operation{
		OperationID: "showcaseNext",
		Method:      http.MethodPost,
		Path:        "/api/v1/showcase/next",
		Summary:     "Next slide",
		Tags:        []string{"Showcase"},
	}, s.handleShowcaseNext)

	huma.Register(s.api, huma.Operation{
		OperationID: "showcasePrev",
		Method:      http.MethodPost,
		Path:        "/api/v1/showcase/prev",
		Summary:     "Previous slide",
		Tags:        []string{"Showcase"},
	}, s.handleShowcasePrev)

	huma.Register(s.api, huma.Operation{
		OperationID: "showcaseGoTo",
		Method:      http.MethodPost,
		Path:        "/api/v1/showcase/goto",
		Summary:     "Jump to slide",
		Description: "Jumps to a slide index. Out-of-range indices leave the state unchanged",
		Tags:        []string{"Showcase"},
	}, s.handleShowcaseGoTo)

	huma.Register(s.api, huma.Operation{
		OperationID: "showcaseGesture",
		Method:      http.MethodPost,
		Path:        "/api/v1/showcase/gesture",
		Summary:     "Apply drag gesture",
		Description: "Applies a completed pointer drag. Travel below the threshold snaps back",
		Tags:        []string{"Showcase"},
	}, s.handleShowcaseGesture)

	huma.Register(s.api, huma.Operation{
		OperationID: "showcaseViewport",
		Method:      http.MethodPost,
		Path:        "/api/v1/showcase/viewport",
		Summary:     "Set viewport width",
		Description: "Reclassifies the slides-per-view geometry for the given width",
		Tags:        []string{"Showcase"},
	}, s.handleShowcaseViewport)
}

// === DTOs ===

type ShowcaseResponse struct {
	State carousel.State `json:"state" doc:"Carousel state"`
	Books []*domain.Book `json:"books" doc:"Books on the current slide"`
}

type ShowcaseOutput struct {
	Body ShowcaseResponse
}

type ShowcaseGoToInput struct {
	Body struct {
		Index int `json:"index" minimum:"0" doc:"Target slide index"`
	}
}

type ShowcaseGestureInput struct {
	Body struct {
		StartX int `json:"start_x" doc:"Pointer-down x coordinate"`
		EndX   int `json:"end_x" doc:"Pointer-up x coordinate"`
	}
}

type ShowcaseViewportInput struct {
	Body struct {
		Width int `json:"width" minimum:"1" doc:"Viewport width in pixels"`
	}
}

// === Handlers ===

func (s *Server) showcaseOutput() *ShowcaseOutput {
	state, books := s.services.Showcase.State()
	return &ShowcaseOutput{Body: ShowcaseResponse{State: state, Books: books}}
}

func (s *Server) handleGetShowcase(_ context.Context, _ *struct{}) (*ShowcaseOutput, error) {
	return s.showcaseOutput(), nil
}

func (s *Server) handleShowcaseNext(_ context.Context, _ *struct{}) (*ShowcaseOutput, error) {
	s.services.Showcase.Next()
	return s.showcaseOutput(), nil
}

func (s *Server) handleShowcasePrev(_ context.Context, _ *struct{}) (*ShowcaseOutput, error) {
	s.services.Showcase.Prev()
	return s.showcaseOutput(), nil
}

func (s *Server) handleShowcaseGoTo(_ context.Context, input *ShowcaseGoToInput) (*ShowcaseOutput, error) {
	s.services.Showcase.GoTo(input.Body.Index)
	return s.showcaseOutput(), nil
}

func (s *Server) handleShowcaseGesture(_ context.Context, input *ShowcaseGestureInput) (*ShowcaseOutput, error) {
	s.services.Showcase.Gesture(input.Body.StartX, input.Body.EndX)
	return s.showcaseOutput(), nil
}

func (s *Server) handleShowcaseViewport(_ context.Context, input *ShowcaseViewportInput) (*ShowcaseOutput, error) {
	s.services.Showcase.SetViewport(input.Body.Width)
	return s.showcaseOutput(), nil
}
