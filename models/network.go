package models

import (
	"errors"
	"fmt"
	"math"
)

// LineID identifies a suburban rail corridor
type LineID string

const (
	LineWestern      LineID = "western"
	LineCentral      LineID = "central"
	LineHarbour      LineID = "harbour"
	LineTransHarbour LineID = "trans-harbour"
)

// AllLines returns the Mumbai suburban corridors in display order
func AllLines() []LineID {
	return []LineID{
		LineWestern,
		LineCentral,
		LineHarbour,
		LineTransHarbour,
	}
}

// Station is a stop on one line, positioned by its distance marker along that line
type Station struct {
	Name       string  `json:"name"`
	LocalLabel string  `json:"localLabel"` // Devanagari display label
	Line       LineID  `json:"line"`
	PositionKm float64 `json:"positionKm"`
}

// Line is an ordered sequence of stations sharing one coordinate space
type Line struct {
	ID       LineID    `json:"id"`
	Name     string    `json:"name"`
	Stations []Station `json:"stations,omitempty"`
}

// Validate checks the station ordering and naming invariants of a line
func (l *Line) Validate() error {
	if l.ID == "" {
		return errors.New("line id is required")
	}
	if len(l.Stations) == 0 {
		return fmt.Errorf("line %s has no stations", l.ID)
	}

	seen := make(map[string]struct{}, len(l.Stations))
	prev := 0.0
	for i, s := range l.Stations {
		if s.Name == "" {
			return fmt.Errorf("line %s: station %d has no name", l.ID, i)
		}
		if s.Line != l.ID {
			return fmt.Errorf("line %s: station %s belongs to line %s", l.ID, s.Name, s.Line)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("line %s: duplicate station %s", l.ID, s.Name)
		}
		seen[s.Name] = struct{}{}

		if !validMarker(s.PositionKm) {
			return fmt.Errorf("line %s: station %s has invalid position %v", l.ID, s.Name, s.PositionKm)
		}
		// Markers follow physical order, so they may repeat but never go back
		if i > 0 && s.PositionKm < prev {
			return fmt.Errorf("line %s: station %s at %.2f km precedes previous marker %.2f km",
				l.ID, s.Name, s.PositionKm, prev)
		}
		prev = s.PositionKm
	}

	return nil
}

// Hub is the interchange used when routing between LineA and LineB.
// PositionA is the hub's marker on LineA, PositionB its marker on LineB.
type Hub struct {
	LineA     LineID  `json:"lineA"`
	LineB     LineID  `json:"lineB"`
	PositionA float64 `json:"positionA"`
	PositionB float64 `json:"positionB"`
	Station   string  `json:"station"`
}

// Reverse returns the same interchange seen from LineB
func (h Hub) Reverse() Hub {
	return Hub{
		LineA:     h.LineB,
		LineB:     h.LineA,
		PositionA: h.PositionB,
		PositionB: h.PositionA,
		Station:   h.Station,
	}
}

// Validate checks that a hub joins two distinct lines at valid markers
func (h *Hub) Validate() error {
	if h.LineA == "" || h.LineB == "" {
		return errors.New("hub requires two lines")
	}
	if h.LineA == h.LineB {
		return fmt.Errorf("hub %s joins line %s to itself", h.Station, h.LineA)
	}
	if !validMarker(h.PositionA) || !validMarker(h.PositionB) {
		return fmt.Errorf("hub %s has an invalid marker %v/%v", h.Station, h.PositionA, h.PositionB)
	}
	return nil
}

// validMarker accepts finite, non-negative kilometre markers
func validMarker(km float64) bool {
	return km >= 0 && !math.IsInf(km, 0)
}

// FareStage maps a distance bracket to a second-class adult fare.
// A nil MaxDistanceKm marks the final, unbounded stage.
type FareStage struct {
	MaxDistanceKm *float64 `json:"maxDistanceKm"`
	Fare          int      `json:"fare"`
}

// Unbounded reports whether this stage caps every distance past the finite thresholds
func (f FareStage) Unbounded() bool {
	return f.MaxDistanceKm == nil
}
