package fare

import (
	"errors"
	"fmt"
	"math"

	"github.com/mumbai-atvm/atvm/models"
)

// Table is an ascending list of fare stages ending in one unbounded stage
type Table struct {
	stages []models.FareStage
}

// NewTable validates stage ordering and copies the stages
func NewTable(stages []models.FareStage) (*Table, error) {
	if len(stages) == 0 {
		return nil, errors.New("fare table needs at least one stage")
	}

	last := len(stages) - 1
	if !stages[last].Unbounded() {
		return nil, errors.New("final fare stage must be unbounded")
	}

	prevKm := -1.0
	prevFare := -1
	for i, st := range stages {
		if st.Fare < 0 {
			return nil, fmt.Errorf("fare stage %d has negative fare %d", i, st.Fare)
		}
		if st.Fare < prevFare {
			return nil, fmt.Errorf("fare stage %d fare %d is lower than the previous stage", i, st.Fare)
		}
		prevFare = st.Fare

		if i == last {
			break
		}
		if st.Unbounded() {
			return nil, fmt.Errorf("fare stage %d is unbounded but not last", i)
		}
		if math.IsNaN(*st.MaxDistanceKm) || math.IsInf(*st.MaxDistanceKm, 0) {
			return nil, fmt.Errorf("fare stage %d threshold is not finite", i)
		}
		if *st.MaxDistanceKm <= prevKm {
			return nil, fmt.Errorf("fare stage %d threshold %.2f km is not ascending", i, *st.MaxDistanceKm)
		}
		prevKm = *st.MaxDistanceKm
	}

	return &Table{stages: copyStages(stages)}, nil
}

// Lookup returns the fare of the first stage whose threshold covers distanceKm
func (t *Table) Lookup(distanceKm float64) int {
	for _, st := range t.stages {
		if st.Unbounded() || *st.MaxDistanceKm >= distanceKm {
			return st.Fare
		}
	}
	// unreachable: NewTable guarantees an unbounded final stage
	return t.stages[len(t.stages)-1].Fare
}

// Stages returns a copy of the stage list
func (t *Table) Stages() []models.FareStage {
	return copyStages(t.stages)
}

func copyStages(in []models.FareStage) []models.FareStage {
	out := make([]models.FareStage, len(in))
	for i, st := range in {
		out[i] = models.FareStage{Fare: st.Fare}
		if st.MaxDistanceKm != nil {
			km := *st.MaxDistanceKm
			out[i].MaxDistanceKm = &km
		}
	}
	return out
}
