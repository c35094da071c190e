package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"Go_Discovery/src/config"
	"Go_Discovery/src/types"
)

// Store is a catalog source that may hold connections.
type Store interface {
	types.CatalogStore
	Close() error
}

// Seeder is implemented by stores that can be filled from the JSON catalog.
type Seeder interface {
	Seed(ctx context.Context, restaurants []types.Restaurant) error
}

// NewStore builds the catalog store selected by cfg.CatalogSource. With
// cfg.SeedCatalog set, database backed stores are filled from cfg.CatalogPath.
func NewStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	var store Store

	switch cfg.CatalogSource {
	case config.SourceFile:
		return NewFileStore(cfg.CatalogPath), nil

	case config.SourceElastic:
		es, err := NewElasticStore(cfg.Elastic.URL, cfg.Elastic.Index, logger)
		if err != nil {
			return nil, err
		}
		if err := es.CreateIndexWithMapping(ctx, cfg.Elastic.SchemaPath); err != nil {
			_ = es.Close()
			return nil, err
		}
		store = es

	case config.SourcePostgres:
		ps, err := NewPostgresStore(ctx, cfg.Postgres.DSN(), logger)
		if err != nil {
			return nil, err
		}
		store = ps

	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}

	if cfg.SeedCatalog {
		if err := SeedFromFile(ctx, store, cfg.CatalogPath); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return store, nil
}

func SeedFromFile(ctx context.Context, store types.CatalogStore, path string) error {
	seeder, ok := store.(Seeder)
	if !ok {
		return fmt.Errorf("catalog store %T cannot be seeded", store)
	}
	restaurants, err := ReadCatalogFile(path)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return seeder.Seed(ctx, restaurants)
}
