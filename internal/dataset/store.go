// Package dataset persists headline collections. The original dataset is a
// CSV file laid down once and never rewritten; the integrated dataset is
// loaded, merged, and replaced wholesale on every run.
package dataset

import (
	"context"
	"log/slog"

	"github.com/rowanhq/headliner/internal/config"
	"github.com/rowanhq/headliner/internal/types"
)

// Store is a loadable, replaceable headline dataset.
type Store interface {
	// Name identifies the backend for logs and errors.
	Name() string

	// Load reads every record in stored order. A dataset that does not
	// exist yet yields (nil, nil): an empty collection, not an error.
	Load(ctx context.Context) (types.Batch, error)

	// Replace swaps the dataset contents for the given records. Readers
	// never observe a partially written dataset.
	Replace(ctx context.Context, records types.Batch) error

	Close() error
}

// OpenOriginal opens the read-mostly original dataset, which is always a
// CSV file. Its rows predate dated collection, so missing dates read back
// as the "initial" sentinel.
func OpenOriginal(cfg config.Dataset, logger *slog.Logger) Store {
	return NewCSVStore(cfg.OriginalPath, types.DateOriginal, logger)
}

// OpenIntegrated opens the integrated dataset on the configured backend.
func OpenIntegrated(cfg config.Dataset, logger *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case "mongo":
		return NewMongoStore(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection, logger)
	default:
		return NewCSVStore(cfg.IntegratedPath, types.DateUnknown, logger), nil
	}
}
