package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/Abddev09/usat-library/internal/config"
	"github.com/Abddev09/usat-library/internal/logger"
	"github.com/Abddev09/usat-library/internal/metrics"
	"github.com/Abddev09/usat-library/internal/service"
	"github.com/Abddev09/usat-library/internal/validation"
)

// ProvideCatalogService provides the snapshot-caching catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	upstream := do.MustInvoke[*UpstreamClientHandle](i)
	notifyHandle := do.MustInvoke[*NotifyManagerHandle](i)

	return service.NewCatalogService(upstream.Client, notifyHandle.Manager, m,
		log.Logger, cfg.Catalog.SnapshotTTL)
}

// ProvideCartService provides the cart service.
func ProvideCartService(i do.Injector) (*service.CartService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)
	notifyHandle := do.MustInvoke[*NotifyManagerHandle](i)

	return service.NewCartService(storeHandle.Store, catalogService,
		notifyHandle.Manager, m, log.Logger), nil
}

// ProvideProfileService provides the profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	upstream := do.MustInvoke[*UpstreamClientHandle](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)

	return service.NewProfileService(storeHandle.Store, upstream.Client,
		catalogService, log.Logger), nil
}

// ProvideSessionService provides the identity session service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)

	return service.NewSessionService(storeHandle.Store, validator, log.Logger), nil
}

// ShowcaseHandle wraps the showcase service with its autoplay lifecycle.
type ShowcaseHandle struct {
	*service.ShowcaseService
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *ShowcaseHandle) Shutdown() error {
	h.cancel()
	return nil
}

// ProvideShowcase provides the autoplaying new-arrivals showcase.
func ProvideShowcase(i do.Injector) (*ShowcaseHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)
	notifyHandle := do.MustInvoke[*NotifyManagerHandle](i)

	showcase := service.NewShowcaseService(catalogService, notifyHandle.Manager,
		m, log.Logger, cfg.Showcase.ViewportWidth, cfg.Showcase.AutoplayInterval)

	ctx, cancel := context.WithCancel(context.Background())
	go showcase.Start(ctx)

	log.Info("Showcase autoplay started",
		"interval", cfg.Showcase.AutoplayInterval.String())

	return &ShowcaseHandle{
		ShowcaseService: showcase,
		cancel:          cancel,
	}, nil
}
