package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mumbai-atvm/atvm/dataset"
	"github.com/mumbai-atvm/atvm/models"
)

// PostgresStore keeps the reference network in PostgreSQL
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres creates a connection pool and verifies connectivity
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases every pooled connection
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// Ping checks the database connection
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// EnsureSchema creates the network tables if they don't exist
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveDataset replaces the stored network with ds in a single transaction
func (p *PostgresStore) SaveDataset(ctx context.Context, ds *dataset.Dataset) error {
	lines, hubs, stages := ds.Models()

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE fare_stages, network_hubs, network_stations, network_lines"); err != nil {
		return fmt.Errorf("failed to clear network tables: %w", err)
	}

	batch := &pgx.Batch{}
	for i, l := range lines {
		batch.Queue("INSERT INTO network_lines (line_id, name, sort_order) VALUES ($1, $2, $3)",
			string(l.ID), l.Name, i)
		for seq, st := range l.Stations {
			batch.Queue("INSERT INTO network_stations (line_id, seq, name, local_label, position_km) VALUES ($1, $2, $3, $4, $5)",
				string(l.ID), seq, st.Name, st.LocalLabel, st.PositionKm)
		}
	}
	for _, h := range hubs {
		batch.Queue("INSERT INTO network_hubs (line_a, line_b, position_a, position_b, station) VALUES ($1, $2, $3, $4, $5)",
			string(h.LineA), string(h.LineB), h.PositionA, h.PositionB, h.Station)
	}
	for seq, st := range stages {
		batch.Queue("INSERT INTO fare_stages (seq, max_distance_km, fare) VALUES ($1, $2, $3)",
			seq, st.MaxDistanceKm, st.Fare)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert network: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit network: %w", err)
	}
	return nil
}

// LoadDataset reads the stored network back as a dataset document
func (p *PostgresStore) LoadDataset(ctx context.Context) (*dataset.Dataset, error) {
	rows, err := p.pool.Query(ctx, selectLinesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Line, error) {
		var id, name string
		err := row.Scan(&id, &name)
		return models.Line{ID: models.LineID(id), Name: name}, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan line rows: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyStore
	}

	rows, err = p.pool.Query(ctx, selectStationsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	stations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Station, error) {
		var st models.Station
		var line string
		err := row.Scan(&line, &st.Name, &st.LocalLabel, &st.PositionKm)
		st.Line = models.LineID(line)
		return st, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan station rows: %w", err)
	}
	for _, st := range stations {
		if err := appendStation(lines, st); err != nil {
			return nil, err
		}
	}

	rows, err = p.pool.Query(ctx, selectHubsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query hubs: %w", err)
	}
	hubs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Hub, error) {
		var h models.Hub
		var a, b string
		err := row.Scan(&a, &b, &h.PositionA, &h.PositionB, &h.Station)
		h.LineA, h.LineB = models.LineID(a), models.LineID(b)
		return h, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan hub rows: %w", err)
	}

	rows, err = p.pool.Query(ctx, selectStagesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query fare stages: %w", err)
	}
	stages, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.FareStage, error) {
		var st models.FareStage
		err := row.Scan(&st.MaxDistanceKm, &st.Fare)
		return st, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan fare stage rows: %w", err)
	}

	return dataset.FromModels(lines, hubs, stages), nil
}
