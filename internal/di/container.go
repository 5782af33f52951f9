// Package di provides dependency injection configuration for the catalog server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/Abddev09/usat-library/internal/config"
	"github.com/Abddev09/usat-library/internal/di/providers"
	"github.com/Abddev09/usat-library/internal/logger"
	"github.com/Abddev09/usat-library/internal/metrics"
	"github.com/Abddev09/usat-library/internal/service"
	"github.com/Abddev09/usat-library/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideNotifyManager)
	do.Provide(injector, providers.ProvideStore)

	// Upstream layer
	do.Provide(injector, providers.ProvideUpstreamClient)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideCartService)
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideShowcase)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*metrics.Metrics](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.NotifyManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.UpstreamClientHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.CartService](injector)
	_ = do.MustInvoke[*service.ProfileService](injector)
	_ = do.MustInvoke[*service.SessionService](injector)
	_ = do.MustInvoke[*providers.ShowcaseHandle](injector)

	// Server last: everything it serves must exist first
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
