package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Abddev09/usat-library/internal/domain"
)

func (s *Server) registerTaxonomyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Description: "Returns all catalog categories",
		Tags:        []string{"Taxonomy"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "listDepartments",
		Method:      http.MethodGet,
		Path:        "/api/v1/departments",
		Summary:     "List departments",
		Description: "Returns all university departments",
		Tags:        []string{"Taxonomy"},
	}, s.handleListDepartments)
}

type ListCategoriesOutput struct {
	Body struct {
		Categories []domain.Category `json:"categories" doc:"All categories"`
	}
}

type ListDepartmentsOutput struct {
	Body struct {
		Departments []domain.Department `json:"departments" doc:"All departments"`
	}
}

func (s *Server) handleListCategories(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	categories, err := s.services.Catalog.Categories(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway("failed to list categories", err)
	}

	out := &ListCategoriesOutput{}
	out.Body.Categories = categories
	return out, nil
}

func (s *Server) handleListDepartments(ctx context.Context, _ *struct{}) (*ListDepartmentsOutput, error) {
	departments, err := s.services.Catalog.Departments(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway("failed to list departments", err)
	}

	out := &ListDepartmentsOutput{}
	out.Body.Departments = departments
	return out, nil
}
