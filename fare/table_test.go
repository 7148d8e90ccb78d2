package fare

import (
	"math"
	"testing"

	"github.com/mumbai-atvm/atvm/models"
)

func km(v float64) *float64 { return &v }

func mumbaiStages() []models.FareStage {
	return []models.FareStage{
		{MaxDistanceKm: km(10), Fare: 5},
		{MaxDistanceKm: km(30), Fare: 10},
		{MaxDistanceKm: km(60), Fare: 15},
		{Fare: 20},
	}
}

func TestTableLookup(t *testing.T) {
	table, err := NewTable(mumbaiStages())
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	tests := []struct {
		distance float64
		want     int
	}{
		{0, 5},
		{10, 5}, // thresholds are inclusive
		{10.1, 10},
		{30, 10},
		{35.0, 15},
		{60, 15},
		{60.01, 20},
		{500, 20},
	}

	for _, tc := range tests {
		if got := table.Lookup(tc.distance); got != tc.want {
			t.Errorf("Lookup(%.2f) = %d, want %d", tc.distance, got, tc.want)
		}
	}
}

func TestNewTableRejectsBadStages(t *testing.T) {
	tests := []struct {
		name   string
		stages []models.FareStage
	}{
		{"empty", nil},
		{"no unbounded stage", []models.FareStage{{MaxDistanceKm: km(10), Fare: 5}}},
		{"unbounded in the middle", []models.FareStage{{Fare: 5}, {MaxDistanceKm: km(10), Fare: 10}, {Fare: 15}}},
		{"descending thresholds", []models.FareStage{{MaxDistanceKm: km(30), Fare: 5}, {MaxDistanceKm: km(10), Fare: 10}, {Fare: 15}}},
		{"negative fare", []models.FareStage{{MaxDistanceKm: km(10), Fare: -5}, {Fare: 10}}},
		{"NaN threshold", []models.FareStage{{MaxDistanceKm: km(math.NaN()), Fare: 5}, {Fare: 10}}},
		{"infinite threshold", []models.FareStage{{MaxDistanceKm: km(math.Inf(1)), Fare: 5}, {Fare: 10}}},
		{"decreasing fares", []models.FareStage{{MaxDistanceKm: km(10), Fare: 10}, {Fare: 5}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTable(tc.stages); err == nil {
				t.Error("expected NewTable to fail")
			}
		})
	}
}

func TestTableOwnsStages(t *testing.T) {
	stages := mumbaiStages()
	table, err := NewTable(stages)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	*stages[0].MaxDistanceKm = 100
	if got := table.Lookup(20); got != 10 {
		t.Errorf("table changed with caller's slice: Lookup(20) = %d", got)
	}

	out := table.Stages()
	*out[1].MaxDistanceKm = 1
	if got := table.Lookup(20); got != 10 {
		t.Errorf("table changed through Stages(): Lookup(20) = %d", got)
	}
}
