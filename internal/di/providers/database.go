package providers

import (
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/quotebook/quotebook-server/internal/config"
	"github.com/quotebook/quotebook-server/internal/logger"
	"github.com/quotebook/quotebook-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
	log *logger.Logger
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	h.log.Info("Closing database...")
	if err := h.Close(); err != nil {
		h.log.WithError(err).Error("Failed to close database")
		return err
	}
	return nil
}

// ProvideStore opens the SQLite database, creating its directory if needed.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o750); err != nil {
		return nil, err
	}

	db, err := sqlite.Open(cfg.Database.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", cfg.Database.Path)

	return &StoreHandle{Store: db, log: log}, nil
}
