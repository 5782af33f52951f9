// Package providers contains dependency injection providers for the catalog server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/Abddev09/usat-library/internal/config"
	"github.com/Abddev09/usat-library/internal/logger"
	"github.com/Abddev09/usat-library/internal/metrics"
	"github.com/Abddev09/usat-library/internal/validation"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting USAT Library server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"upstream_url", cfg.Upstream.BaseURL,
		"locale", cfg.Upstream.Locale,
	)

	return log, nil
}

// ProvideMetrics provides the Prometheus metrics registry.
func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	return metrics.New(), nil
}

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
