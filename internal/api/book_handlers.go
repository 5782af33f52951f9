package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Abddev09/usat-library/internal/domain"
	apperrors "github.com/Abddev09/usat-library/internal/errors"
	"github.com/Abddev09/usat-library/internal/filter"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns a filtered, paginated page of the catalog",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "listNewBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/new",
		Summary:     "List new arrivals",
		Description: "Returns books added within the new-arrival window",
		Tags:        []string{"Books"},
	}, s.handleListNewBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a book with its related titles",
		Tags:        []string{"Books"},
	}, s.handleGetBook)
}

// === DTOs ===

type ListBooksInput struct {
	Page        int    `query:"page" default:"1" minimum:"1" doc:"1-based page number"`
	Categories  string `query:"categories" doc:"Comma-separated category IDs"`
	Departments string `query:"departments" doc:"Comma-separated department IDs"`
}

type ListBooksResponse struct {
	Books      []*domain.Book `json:"books" doc:"Books on this page"`
	Page       int            `json:"page" doc:"Page number"`
	PerPage    int            `json:"per_page" doc:"Page size"`
	TotalItems int            `json:"total_items" doc:"Matching books across all pages"`
	TotalPages int            `json:"total_pages" doc:"Total page count"`
}

type ListBooksOutput struct {
	Body ListBooksResponse
}

type NewBooksOutput struct {
	Body struct {
		Books []*domain.Book `json:"books" doc:"New arrivals in catalog order"`
	}
}

type GetBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

type BookDetailResponse struct {
	Book    *domain.Book   `json:"book" doc:"The requested book"`
	Related []*domain.Book `json:"related" doc:"Related books, best match first"`
}

type GetBookOutput struct {
	Body BookDetailResponse
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	sel := filter.Selection{
		CategoryIDs:   splitIDList(input.Categories),
		DepartmentIDs: splitIDList(input.Departments),
	}

	page, err := s.services.Catalog.Filter(ctx, sel, input.Page)
	if err != nil {
		return nil, huma.Error502BadGateway("failed to list books", err)
	}

	return &ListBooksOutput{Body: ListBooksResponse{
		Books:      page.Items,
		Page:       page.Number,
		PerPage:    page.PerPage,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}}, nil
}

func (s *Server) handleListNewBooks(ctx context.Context, _ *struct{}) (*NewBooksOutput, error) {
	books, err := s.services.Catalog.NewBooks(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway("failed to list new arrivals", err)
	}

	out := &NewBooksOutput{}
	out.Body.Books = books
	return out, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*GetBookOutput, error) {
	// One snapshot read resolves both the book and its related list.
	book, related, err := s.services.Catalog.BookWithRelated(ctx, input.ID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, huma.Error404NotFound("book not found", err)
		}
		return nil, huma.Error502BadGateway("failed to load book", err)
	}

	return &GetBookOutput{Body: BookDetailResponse{
		Book:    book,
		Related: related,
	}}, nil
}

// splitIDList parses a comma-separated ID list, dropping empty segments.
func splitIDList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
