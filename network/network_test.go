package network

import (
	"errors"
	"testing"

	"github.com/mumbai-atvm/atvm/models"
)

func testLines() []models.Line {
	return []models.Line{
		{
			ID:   models.LineWestern,
			Name: "Western Railway",
			Stations: []models.Station{
				{Name: "Churchgate", LocalLabel: "चर्चगेट", Line: models.LineWestern, PositionKm: 0},
				{Name: "Mumbai Central", LocalLabel: "मुंबई सेंट्रल", Line: models.LineWestern, PositionKm: 4.2},
				{Name: "Dadar", LocalLabel: "दादर", Line: models.LineWestern, PositionKm: 10.1},
				{Name: "Andheri", LocalLabel: "अंधेरी", Line: models.LineWestern, PositionKm: 21.9},
			},
		},
		{
			ID:   models.LineCentral,
			Name: "Central Railway",
			Stations: []models.Station{
				{Name: "CSMT", Line: models.LineCentral, PositionKm: 0},
				{Name: "Dadar", LocalLabel: "दादर", Line: models.LineCentral, PositionKm: 9.1},
				{Name: "Thane", LocalLabel: "ठाणे", Line: models.LineCentral, PositionKm: 34.0},
			},
		},
	}
}

func testHubs() []models.Hub {
	return []models.Hub{
		{LineA: models.LineWestern, LineB: models.LineCentral, PositionA: 10.1, PositionB: 9.1, Station: "Dadar"},
	}
}

func mustNetwork(t *testing.T) *Network {
	t.Helper()
	n, err := New(testLines(), testHubs())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return n
}

func TestStationsOnLine(t *testing.T) {
	n := mustNetwork(t)

	stations, err := n.StationsOnLine(models.LineWestern)
	if err != nil {
		t.Fatalf("StationsOnLine failed: %v", err)
	}
	if len(stations) != 4 {
		t.Fatalf("expected 4 stations, got %d", len(stations))
	}
	want := []string{"Churchgate", "Mumbai Central", "Dadar", "Andheri"}
	for i, name := range want {
		if stations[i].Name != name {
			t.Errorf("station %d = %s, want %s", i, stations[i].Name, name)
		}
	}

	// The returned slice is a copy
	stations[0].Name = "Mutated"
	again, _ := n.StationsOnLine(models.LineWestern)
	if again[0].Name != "Churchgate" {
		t.Error("StationsOnLine exposed internal state")
	}
}

func TestStationsOnLineUnknown(t *testing.T) {
	n := mustNetwork(t)

	_, err := n.StationsOnLine("monorail")
	var unknown *models.UnknownLineError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownLineError, got %v", err)
	}
	if unknown.Line != "monorail" {
		t.Errorf("error line = %q, want monorail", unknown.Line)
	}
}

func TestStationLookup(t *testing.T) {
	n := mustNetwork(t)

	s, err := n.Station(models.LineCentral, "Thane")
	if err != nil {
		t.Fatalf("Station failed: %v", err)
	}
	if s.PositionKm != 34.0 {
		t.Errorf("Thane marker = %.1f, want 34.0", s.PositionKm)
	}

	if _, err := n.Station(models.LineCentral, "Churchgate"); !errors.Is(err, models.ErrStationNotFound) {
		t.Errorf("expected ErrStationNotFound, got %v", err)
	}

	var unknown *models.UnknownLineError
	if _, err := n.Station("monorail", "Wadala"); !errors.As(err, &unknown) {
		t.Errorf("expected *UnknownLineError, got %v", err)
	}
}

func TestSameLine(t *testing.T) {
	n := mustNetwork(t)
	wrDadar, _ := n.Station(models.LineWestern, "Dadar")
	crDadar, _ := n.Station(models.LineCentral, "Dadar")
	churchgate, _ := n.Station(models.LineWestern, "Churchgate")

	if !SameLine(wrDadar, churchgate) {
		t.Error("Dadar (WR) and Churchgate should share a line")
	}
	if SameLine(wrDadar, crDadar) {
		t.Error("Dadar on two lines should not share a line")
	}
}

func TestHubBetweenSymmetric(t *testing.T) {
	n := mustNetwork(t)

	wc, ok := n.HubBetween(models.LineWestern, models.LineCentral)
	if !ok {
		t.Fatal("expected hub between western and central")
	}
	cw, ok := n.HubBetween(models.LineCentral, models.LineWestern)
	if !ok {
		t.Fatal("expected hub between central and western")
	}

	if wc.LineA != models.LineWestern || wc.PositionA != 10.1 || wc.PositionB != 9.1 {
		t.Errorf("western->central hub oriented wrong: %+v", wc)
	}
	if cw.LineA != models.LineCentral || cw.PositionA != 9.1 || cw.PositionB != 10.1 {
		t.Errorf("central->western hub oriented wrong: %+v", cw)
	}
	if cw.Reverse() != wc {
		t.Error("hub lookup is not symmetric")
	}

	if _, ok := n.HubBetween(models.LineWestern, models.LineWestern); ok {
		t.Error("a line has no hub to itself")
	}
	if _, ok := n.HubBetween(models.LineWestern, models.LineHarbour); ok {
		t.Error("no hub should exist for an unmapped pair")
	}
}

func TestNewRejectsBadCatalog(t *testing.T) {
	tests := []struct {
		name  string
		lines []models.Line
		hubs  []models.Hub
	}{
		{
			name:  "duplicate line",
			lines: append(testLines(), testLines()[0]),
		},
		{
			name:  "hub to unknown line",
			lines: testLines(),
			hubs: []models.Hub{
				{LineA: models.LineCentral, LineB: models.LineHarbour, PositionA: 15.2, PositionB: 13.1, Station: "Kurla"},
			},
		},
		{
			name:  "duplicate hub pair in either order",
			lines: testLines(),
			hubs: append(testHubs(),
				models.Hub{LineA: models.LineCentral, LineB: models.LineWestern, PositionA: 0, PositionB: 0, Station: "Elsewhere"}),
		},
		{
			name:  "hub joining a line to itself",
			lines: testLines(),
			hubs:  []models.Hub{{LineA: models.LineWestern, LineB: models.LineWestern, Station: "Dadar"}},
		},
		{
			name: "unordered stations",
			lines: []models.Line{{
				ID: models.LineWestern,
				Stations: []models.Station{
					{Name: "Dadar", Line: models.LineWestern, PositionKm: 10.1},
					{Name: "Churchgate", Line: models.LineWestern, PositionKm: 0},
				},
			}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.lines, tc.hubs); err == nil {
				t.Error("expected New to fail")
			}
		})
	}
}

func TestSearch(t *testing.T) {
	n := mustNetwork(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Churchgate", "Mumbai Central", "Dadar", "Andheri"}},
		{"dad", []string{"Dadar"}},
		{"  CENTRAL ", []string{"Mumbai Central"}},
		{"अंधेरी", []string{"Andheri"}},
		{" दादर ", []string{"Dadar"}},
		{"borivali", nil},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			got, err := n.Search(models.LineWestern, tc.query)
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Search(%q) returned %d stations, want %d", tc.query, len(got), len(tc.want))
			}
			for i := range tc.want {
				if got[i].Name != tc.want[i] {
					t.Errorf("Search(%q)[%d] = %s, want %s", tc.query, i, got[i].Name, tc.want[i])
				}
			}
		})
	}
}

func TestCatalogAccessors(t *testing.T) {
	n := mustNetwork(t)

	lines := n.Lines()
	if len(lines) != 2 || lines[0].ID != models.LineWestern || lines[1].ID != models.LineCentral {
		t.Errorf("unexpected lines: %+v", lines)
	}
	if lines[0].Stations != nil {
		t.Error("Lines should not carry station slices")
	}
	if got := n.StationCount(); got != 7 {
		t.Errorf("StationCount = %d, want 7", got)
	}
	if hubs := n.Hubs(); len(hubs) != 1 || hubs[0].Station != "Dadar" {
		t.Errorf("unexpected hubs: %+v", hubs)
	}
}
