package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/Abddev09/usat-library/internal/config"
	"github.com/Abddev09/usat-library/internal/logger"
	"github.com/Abddev09/usat-library/internal/notify"
	"github.com/Abddev09/usat-library/internal/store"
)

// NotifyManagerHandle wraps the SSE manager with its context for lifecycle management.
type NotifyManagerHandle struct {
	*notify.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *NotifyManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideNotifyManager provides the server-sent events manager.
func ProvideNotifyManager(i do.Injector) (*NotifyManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := notify.NewManager(log.Logger)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &NotifyManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	notifyHandle := do.MustInvoke[*NotifyManagerHandle](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.Logger, notifyHandle.Manager)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}
