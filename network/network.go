// Package network holds the immutable catalog of suburban lines, stations and
// interchange hubs. A Network is built once at startup and is safe for
// concurrent readers.
package network

import (
	"fmt"
	"strings"

	"github.com/mumbai-atvm/atvm/models"
)

// linePair is an unordered pair of lines, normalized so that a <= b
type linePair struct {
	a, b models.LineID
}

func newLinePair(x, y models.LineID) linePair {
	if y < x {
		x, y = y, x
	}
	return linePair{a: x, b: y}
}

// Network is the station catalog plus the hub table
type Network struct {
	lines    []models.Line
	byID     map[models.LineID]int
	stations map[models.LineID]map[string]models.Station
	hubs     map[linePair]models.Hub // stored with LineA == pair.a
}

// New validates lines and hubs and builds the catalog
func New(lines []models.Line, hubs []models.Hub) (*Network, error) {
	n := &Network{
		lines:    make([]models.Line, 0, len(lines)),
		byID:     make(map[models.LineID]int, len(lines)),
		stations: make(map[models.LineID]map[string]models.Station, len(lines)),
		hubs:     make(map[linePair]models.Hub, len(hubs)),
	}

	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if _, dup := n.byID[l.ID]; dup {
			return nil, fmt.Errorf("duplicate line %s", l.ID)
		}

		// Own a copy so later changes to the caller's slice cannot leak in
		stations := make([]models.Station, len(l.Stations))
		copy(stations, l.Stations)

		index := make(map[string]models.Station, len(stations))
		for _, s := range stations {
			index[s.Name] = s
		}

		n.byID[l.ID] = len(n.lines)
		n.lines = append(n.lines, models.Line{ID: l.ID, Name: l.Name, Stations: stations})
		n.stations[l.ID] = index
	}

	for _, h := range hubs {
		if err := h.Validate(); err != nil {
			return nil, err
		}
		for _, id := range []models.LineID{h.LineA, h.LineB} {
			if _, ok := n.byID[id]; !ok {
				return nil, fmt.Errorf("hub %s: %w", h.Station, &models.UnknownLineError{Line: id})
			}
		}

		key := newLinePair(h.LineA, h.LineB)
		if _, dup := n.hubs[key]; dup {
			return nil, fmt.Errorf("duplicate hub between %s and %s", key.a, key.b)
		}
		if h.LineA != key.a {
			h = h.Reverse()
		}
		n.hubs[key] = h
	}

	return n, nil
}

// Lines returns the catalog lines in load order, without their stations
func (n *Network) Lines() []models.Line {
	out := make([]models.Line, len(n.lines))
	for i, l := range n.lines {
		out[i] = models.Line{ID: l.ID, Name: l.Name}
	}
	return out
}

// LineIDs returns the catalog line identifiers in load order
func (n *Network) LineIDs() []models.LineID {
	out := make([]models.LineID, len(n.lines))
	for i, l := range n.lines {
		out[i] = l.ID
	}
	return out
}

// StationsOnLine returns the canonical, ordered station list of a line
func (n *Network) StationsOnLine(line models.LineID) ([]models.Station, error) {
	i, ok := n.byID[line]
	if !ok {
		return nil, &models.UnknownLineError{Line: line}
	}
	src := n.lines[i].Stations
	out := make([]models.Station, len(src))
	copy(out, src)
	return out, nil
}

// Station looks up a station by line and canonical name
func (n *Network) Station(line models.LineID, name string) (models.Station, error) {
	index, ok := n.stations[line]
	if !ok {
		return models.Station{}, &models.UnknownLineError{Line: line}
	}
	s, ok := index[name]
	if !ok {
		return models.Station{}, fmt.Errorf("%s on line %s: %w", name, line, models.ErrStationNotFound)
	}
	return s, nil
}

// Search returns the stations of a line whose name or local label contains
// query, case-insensitively, in canonical order. An empty query matches all.
func (n *Network) Search(line models.LineID, query string) ([]models.Station, error) {
	stations, err := n.StationsOnLine(line)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return stations, nil
	}

	matches := make([]models.Station, 0, len(stations))
	for _, s := range stations {
		if strings.Contains(strings.ToLower(s.Name), q) || strings.Contains(strings.ToLower(s.LocalLabel), q) {
			matches = append(matches, s)
		}
	}
	return matches, nil
}

// SameLine reports whether both stations lie on the same line
func SameLine(a, b models.Station) bool {
	return a.Line == b.Line
}

// HubBetween returns the interchange joining two distinct lines, oriented so
// that PositionA is the marker on a. The lookup is symmetric.
func (n *Network) HubBetween(a, b models.LineID) (models.Hub, bool) {
	if a == b {
		return models.Hub{}, false
	}
	h, ok := n.hubs[newLinePair(a, b)]
	if !ok {
		return models.Hub{}, false
	}
	if h.LineA != a {
		h = h.Reverse()
	}
	return h, true
}

// Hubs returns every interchange in the table
func (n *Network) Hubs() []models.Hub {
	out := make([]models.Hub, 0, len(n.hubs))
	for _, l := range n.lines {
		for _, other := range n.lines {
			if l.ID >= other.ID {
				continue
			}
			if h, ok := n.hubs[newLinePair(l.ID, other.ID)]; ok {
				out = append(out, h)
			}
		}
	}
	return out
}

// StationCount returns the total number of stations across all lines
func (n *Network) StationCount() int {
	total := 0
	for _, l := range n.lines {
		total += len(l.Stations)
	}
	return total
}
