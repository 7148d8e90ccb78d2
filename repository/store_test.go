package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mumbai-atvm/atvm/dataset"
	"github.com/mumbai-atvm/atvm/models"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "network.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	return store
}

// assertRoundTrip saves the default network, loads it back and checks that
// the rebuilt network prices and routes like the original
func assertRoundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if err := store.SaveDataset(ctx, dataset.Default()); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}
	// Saving twice replaces rather than duplicates
	if err := store.SaveDataset(ctx, dataset.Default()); err != nil {
		t.Fatalf("second SaveDataset failed: %v", err)
	}

	ds, err := store.LoadDataset(ctx)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}
	net, table, err := ds.Build()
	if err != nil {
		t.Fatalf("loaded dataset does not build: %v", err)
	}
	orig, _, _ := dataset.Default().Build()

	if net.StationCount() != orig.StationCount() {
		t.Errorf("station count = %d, want %d", net.StationCount(), orig.StationCount())
	}
	ids := net.LineIDs()
	for i, id := range orig.LineIDs() {
		if ids[i] != id {
			t.Errorf("line %d = %s, want %s (order must survive storage)", i, ids[i], id)
		}
	}

	western, err := net.StationsOnLine(models.LineWestern)
	if err != nil {
		t.Fatalf("StationsOnLine failed: %v", err)
	}
	if western[0].Name != "Churchgate" || western[8].Name != "Dadar" || western[8].PositionKm != 10.1 {
		t.Errorf("western order lost: %+v / %+v", western[0], western[8])
	}
	if western[8].LocalLabel != "दादर" {
		t.Errorf("local label lost: %q", western[8].LocalLabel)
	}

	hub, ok := net.HubBetween(models.LineWestern, models.LineCentral)
	if !ok || hub.PositionA != 10.1 || hub.PositionB != 9.1 {
		t.Errorf("Dadar hub lost: %+v", hub)
	}

	if table.Lookup(35) != 15 || table.Lookup(1000) != 20 {
		t.Error("fare stages lost their thresholds")
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	assertRoundTrip(t, openTestSQLite(t))
}

func TestSQLiteEmptyStore(t *testing.T) {
	store := openTestSQLite(t)

	_, err := store.LoadDataset(context.Background())
	if !errors.Is(err, ErrEmptyStore) {
		t.Errorf("expected ErrEmptyStore, got %v", err)
	}
}

func TestSQLiteEnsureSchemaIsIdempotent(t *testing.T) {
	store := openTestSQLite(t)
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Errorf("second EnsureSchema failed: %v", err)
	}
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestPostgresRoundTrip(t *testing.T) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}

	ctx := context.Background()
	store, err := OpenPostgres(ctx, databaseURL)
	if err != nil {
		t.Fatalf("OpenPostgres failed: %v", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	assertRoundTrip(t, store)
}
