// Package repository stores the reference network in SQLite or PostgreSQL so
// that deployments can manage fare data outside the binary.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mumbai-atvm/atvm/dataset"
	"github.com/mumbai-atvm/atvm/models"
)

// ErrEmptyStore is returned when no network has been saved yet
var ErrEmptyStore = errors.New("no network stored")

// Store is implemented by SQLiteStore and PostgresStore
type Store interface {
	EnsureSchema(ctx context.Context) error
	SaveDataset(ctx context.Context, ds *dataset.Dataset) error
	LoadDataset(ctx context.Context) (*dataset.Dataset, error)
	Ping(ctx context.Context) error
}

const (
	selectLinesSQL = `
		SELECT line_id, name
		FROM network_lines
		ORDER BY sort_order`

	selectStationsSQL = `
		SELECT line_id, name, local_label, position_km
		FROM network_stations
		ORDER BY line_id, seq`

	selectHubsSQL = `
		SELECT line_a, line_b, position_a, position_b, station
		FROM network_hubs
		ORDER BY line_a, line_b`

	selectStagesSQL = `
		SELECT max_distance_km, fare
		FROM fare_stages
		ORDER BY seq`
)

// appendStation adds a station row to its line, in row order
func appendStation(lines []models.Line, st models.Station) error {
	for i := range lines {
		if lines[i].ID == st.Line {
			lines[i].Stations = append(lines[i].Stations, st)
			return nil
		}
	}
	return fmt.Errorf("station %s references unknown line %s", st.Name, st.Line)
}
