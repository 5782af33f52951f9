package providers

import (
	"github.com/samber/do/v2"

	"github.com/Abddev09/usat-library/internal/catalog"
	"github.com/Abddev09/usat-library/internal/config"
	"github.com/Abddev09/usat-library/internal/domain"
	"github.com/Abddev09/usat-library/internal/logger"
)

// UpstreamClientHandle wraps the catalog client with shutdown capability.
type UpstreamClientHandle struct {
	*catalog.Client
}

// Shutdown implements do.Shutdownable.
func (h *UpstreamClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideUpstreamClient provides the rate-limited client for the library backend.
func ProvideUpstreamClient(i do.Injector) (*UpstreamClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := catalog.New(
		cfg.Upstream.BaseURL,
		domain.MatchLocale(cfg.Upstream.Locale),
		log.Logger,
		catalog.WithTimeout(cfg.Upstream.Timeout),
		catalog.WithRateLimit(float64(cfg.Upstream.RequestsPerSecond), 2*cfg.Upstream.RequestsPerSecond),
	)

	log.Info("Upstream client configured",
		"base_url", cfg.Upstream.BaseURL,
		"locale", cfg.Upstream.Locale)

	return &UpstreamClientHandle{Client: client}, nil
}
