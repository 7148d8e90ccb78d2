package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mumbai-atvm/atvm/dataset"
	"github.com/mumbai-atvm/atvm/models"

	_ "modernc.org/sqlite"
)

// schemaSQL is shared by the SQLite and PostgreSQL stores
//
//go:embed schema.sql
var schemaSQL string

// SQLiteStore keeps the reference network in a SQLite database
type SQLiteStore struct {
	db      *sql.DB
	writeMu sync.Mutex // SQLite allows one writer at a time
}

// OpenSQLite opens a SQLite database with WAL mode and foreign keys enabled
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Connected to SQLite database: %s", dbPath)
	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema creates the network tables if they don't exist
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveDataset replaces the stored network with ds in a single transaction
func (s *SQLiteStore) SaveDataset(ctx context.Context, ds *dataset.Dataset) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	lines, hubs, stages := ds.Models()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM fare_stages",
		"DELETE FROM network_hubs",
		"DELETE FROM network_stations",
		"DELETE FROM network_lines",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear network tables: %w", err)
		}
	}

	lineStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO network_lines (line_id, name, sort_order) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare line insert: %w", err)
	}
	defer lineStmt.Close()

	stationStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO network_stations (line_id, seq, name, local_label, position_km) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare station insert: %w", err)
	}
	defer stationStmt.Close()

	for i, l := range lines {
		if _, err := lineStmt.ExecContext(ctx, string(l.ID), l.Name, i); err != nil {
			return fmt.Errorf("failed to insert line %s: %w", l.ID, err)
		}
		for seq, st := range l.Stations {
			if _, err := stationStmt.ExecContext(ctx, string(l.ID), seq, st.Name, st.LocalLabel, st.PositionKm); err != nil {
				return fmt.Errorf("failed to insert station %s/%s: %w", l.ID, st.Name, err)
			}
		}
	}

	for _, h := range hubs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO network_hubs (line_a, line_b, position_a, position_b, station) VALUES (?, ?, ?, ?, ?)",
			string(h.LineA), string(h.LineB), h.PositionA, h.PositionB, h.Station,
		); err != nil {
			return fmt.Errorf("failed to insert hub %s: %w", h.Station, err)
		}
	}

	for seq, st := range stages {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO fare_stages (seq, max_distance_km, fare) VALUES (?, ?, ?)",
			seq, st.MaxDistanceKm, st.Fare,
		); err != nil {
			return fmt.Errorf("failed to insert fare stage %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit network: %w", err)
	}
	return nil
}

// LoadDataset reads the stored network back as a dataset document
func (s *SQLiteStore) LoadDataset(ctx context.Context) (*dataset.Dataset, error) {
	lines, err := s.loadLines(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyStore
	}

	if err := s.loadStations(ctx, lines); err != nil {
		return nil, err
	}

	hubs, err := s.loadHubs(ctx)
	if err != nil {
		return nil, err
	}
	stages, err := s.loadStages(ctx)
	if err != nil {
		return nil, err
	}

	return dataset.FromModels(lines, hubs, stages), nil
}

func (s *SQLiteStore) loadLines(ctx context.Context) ([]models.Line, error) {
	rows, err := s.db.QueryContext(ctx, selectLinesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}
	defer rows.Close()

	var lines []models.Line
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		lines = append(lines, models.Line{ID: models.LineID(id), Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}
	return lines, nil
}

func (s *SQLiteStore) loadStations(ctx context.Context, lines []models.Line) error {
	rows, err := s.db.QueryContext(ctx, selectStationsSQL)
	if err != nil {
		return fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var st models.Station
		var line string
		if err := rows.Scan(&line, &st.Name, &st.LocalLabel, &st.PositionKm); err != nil {
			return fmt.Errorf("failed to scan station row: %w", err)
		}
		st.Line = models.LineID(line)
		if err := appendStation(lines, st); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating station rows: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadHubs(ctx context.Context) ([]models.Hub, error) {
	rows, err := s.db.QueryContext(ctx, selectHubsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query hubs: %w", err)
	}
	defer rows.Close()

	var hubs []models.Hub
	for rows.Next() {
		var h models.Hub
		var a, b string
		if err := rows.Scan(&a, &b, &h.PositionA, &h.PositionB, &h.Station); err != nil {
			return nil, fmt.Errorf("failed to scan hub row: %w", err)
		}
		h.LineA, h.LineB = models.LineID(a), models.LineID(b)
		hubs = append(hubs, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hub rows: %w", err)
	}
	return hubs, nil
}

func (s *SQLiteStore) loadStages(ctx context.Context) ([]models.FareStage, error) {
	rows, err := s.db.QueryContext(ctx, selectStagesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query fare stages: %w", err)
	}
	defer rows.Close()

	var stages []models.FareStage
	for rows.Next() {
		var st models.FareStage
		var maxKm sql.NullFloat64
		if err := rows.Scan(&maxKm, &st.Fare); err != nil {
			return nil, fmt.Errorf("failed to scan fare stage row: %w", err)
		}
		if maxKm.Valid {
			v := maxKm.Float64
			st.MaxDistanceKm = &v
		}
		stages = append(stages, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fare stage rows: %w", err)
	}
	return stages, nil
}
