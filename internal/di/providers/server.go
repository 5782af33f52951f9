package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/Abddev09/usat-library/internal/api"
	"github.com/Abddev09/usat-library/internal/config"
	"github.com/Abddev09/usat-library/internal/logger"
	"github.com/Abddev09/usat-library/internal/metrics"
	"github.com/Abddev09/usat-library/internal/notify"
	"github.com/Abddev09/usat-library/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	notifyHandle := do.MustInvoke[*NotifyManagerHandle](i)
	showcaseHandle := do.MustInvoke[*ShowcaseHandle](i)

	services := &api.Services{
		Catalog:  do.MustInvoke[*service.CatalogService](i),
		Cart:     do.MustInvoke[*service.CartService](i),
		Profile:  do.MustInvoke[*service.ProfileService](i),
		Session:  do.MustInvoke[*service.SessionService](i),
		Showcase: showcaseHandle.ShowcaseService,
	}

	eventsHandler := notify.NewHandler(notifyHandle.Manager, log.Logger)
	server := api.NewServer(storeHandle.Store, services, eventsHandler, m, log.Logger)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start serving in background
	go func() {
		log.Info("HTTP server listening", "port", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: httpServer}, nil
}
