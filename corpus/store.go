package corpus

import (
	"context"
	"fmt"

	"github.com/use-agent/scout/config"
	"github.com/use-agent/scout/models"
)

// Store persists the whole corpus. Load returns an empty corpus when
// nothing has been stored yet. Save replaces the stored corpus in full.
//
// Stores assume a single writer; concurrent runs against the same
// location can lose updates.
type Store interface {
	Load(ctx context.Context) ([]models.ScrapedProduct, error)
	Save(ctx context.Context, records []models.ScrapedProduct) error
	Close() error
}

// Open returns the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFileStore(cfg.Path), nil
	case "sqlite":
		return OpenSQLite(ctx, cfg.Path)
	case "postgres":
		return OpenPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("corpus: unknown storage driver %q", cfg.Driver)
	}
}
