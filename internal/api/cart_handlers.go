package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Abddev09/usat-library/internal/domain"
)

func (s *Server) registerCartRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCart",
		Method:      http.MethodGet,
		Path:        "/api/v1/cart",
		Summary:     "Get cart",
		Description: "Returns the user's cart entries",
		Tags:        []string{"Cart"},
	}, s.handleGetCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "addToCart",
		Method:      http.MethodPost,
		Path:        "/api/v1/cart/items",
		Summary:     "Add to cart",
		Description: "Reserves a book. Repeating the same add is reported, not re-applied",
		Tags:        []string{"Cart"},
	}, s.handleAddToCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFromCart",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cart/items/{bookId}",
		Summary:     "Remove from cart",
		Description: "Removes one book from the cart. Removing an absent book succeeds",
		Tags:        []string{"Cart"},
	}, s.handleRemoveFromCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearCart",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cart",
		Summary:     "Clear cart",
		Description: "Removes every entry from the user's cart",
		Tags:        []string{"Cart"},
	}, s.handleClearCart)
}

// === DTOs ===

type GetCartInput struct {
	UserID string `header:"X-User-ID" doc:"Registered user ID"`
}

type CartResponse struct {
	Entries []*domain.CartEntry `json:"entries" doc:"Cart entries, oldest first"`
}

type GetCartOutput struct {
	Body CartResponse
}

type AddToCartInput struct {
	UserID string `header:"X-User-ID" doc:"Registered user ID"`
	Body   struct {
		BookID string `json:"book_id" minLength:"1" doc:"Book to reserve"`
	}
}

type AddToCartResponse struct {
	Entry     *domain.CartEntry `json:"entry" doc:"The cart entry for this book"`
	Duplicate bool              `json:"duplicate" doc:"True when the book was already in the cart"`
}

type AddToCartOutput struct {
	Body AddToCartResponse
}

type RemoveFromCartInput struct {
	UserID string `header:"X-User-ID" doc:"Registered user ID"`
	BookID string `path:"bookId" doc:"Book to remove"`
}

// === Handlers ===

func (s *Server) handleGetCart(ctx context.Context, input *GetCartInput) (*GetCartOutput, error) {
	entries, err := s.services.Cart.ListCart(ctx, input.UserID)
	if err != nil {
		return nil, huma.Error401Unauthorized("cart requires a registered identity", err)
	}

	return &GetCartOutput{Body: CartResponse{Entries: entries}}, nil
}

func (s *Server) handleAddToCart(ctx context.Context, input *AddToCartInput) (*AddToCartOutput, error) {
	entry, duplicate, err := s.services.Cart.AddToCart(ctx, input.UserID, input.Body.BookID)
	if err != nil {
		return nil, huma.Error400BadRequest("failed to add book to cart", err)
	}

	return &AddToCartOutput{Body: AddToCartResponse{
		Entry:     entry,
		Duplicate: duplicate,
	}}, nil
}

func (s *Server) handleRemoveFromCart(ctx context.Context, input *RemoveFromCartInput) (*struct{}, error) {
	if err := s.services.Cart.RemoveFromCart(ctx, input.UserID, input.BookID); err != nil {
		return nil, huma.Error400BadRequest("failed to remove book from cart", err)
	}
	return &struct{}{}, nil
}

func (s *Server) handleClearCart(ctx context.Context, input *GetCartInput) (*struct{}, error) {
	if err := s.services.Cart.ClearCart(ctx, input.UserID); err != nil {
		return nil, huma.Error400BadRequest("failed to clear cart", err)
	}
	return &struct{}{}, nil
}
