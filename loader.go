package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mumbai-atvm/atvm/config"
	"github.com/mumbai-atvm/atvm/dataset"
	"github.com/mumbai-atvm/atvm/handlers"
	"github.com/mumbai-atvm/atvm/repository"
)

// loadedNetwork is the reference dataset plus the store it came from, if any
type loadedNetwork struct {
	dataset *dataset.Dataset
	store   handlers.Pinger
	close   func()
}

// loadNetwork reads the reference dataset from the source selected by cfg.
// An empty SQLite database is seeded from NETWORK_FILE or the embedded network.
func loadNetwork(ctx context.Context, cfg *config.Config) (*loadedNetwork, error) {
	switch cfg.Source() {
	case config.SourcePostgres:
		log.Println("Loading network from PostgreSQL")
		store, err := repository.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		ds, err := store.LoadDataset(ctx)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to load network from postgres: %w", err)
		}
		return &loadedNetwork{dataset: ds, store: store, close: store.Close}, nil

	case config.SourceSQLite:
		log.Printf("Loading network from SQLite database: %s", cfg.SQLitePath)
		store, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		closeStore := func() { store.Close() }

		if err := store.EnsureSchema(ctx); err != nil {
			closeStore()
			return nil, err
		}

		ds, err := store.LoadDataset(ctx)
		if errors.Is(err, repository.ErrEmptyStore) {
			ds, err = fileOrDefault(cfg.NetworkFile)
			if err == nil {
				log.Printf("SQLite database is empty, seeding %d lines", len(ds.Lines))
				err = store.SaveDataset(ctx, ds)
			}
		}
		if err != nil {
			closeStore()
			return nil, fmt.Errorf("failed to load network from sqlite: %w", err)
		}
		return &loadedNetwork{dataset: ds, store: store, close: closeStore}, nil

	case config.SourceFile:
		log.Printf("Loading network from file: %s", cfg.NetworkFile)
		ds, err := dataset.LoadFile(cfg.NetworkFile)
		if err != nil {
			return nil, err
		}
		return &loadedNetwork{dataset: ds, close: func() {}}, nil

	default:
		log.Println("Using embedded Mumbai network")
		return &loadedNetwork{dataset: dataset.Default(), close: func() {}}, nil
	}
}

func fileOrDefault(path string) (*dataset.Dataset, error) {
	if path == "" {
		return dataset.Default(), nil
	}
	return dataset.LoadFile(path)
}
