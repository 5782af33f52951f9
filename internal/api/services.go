package api

import (
	"github.com/Abddev09/usat-library/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Profile  *service.ProfileService
	Session  *service.SessionService
	Showcase *service.ShowcaseService
}
