// Package dataset loads the reference network (lines, hubs, fare stages) from
// YAML and builds the immutable network and fare table from it.
package dataset

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mumbai-atvm/atvm/fare"
	"github.com/mumbai-atvm/atvm/models"
	"github.com/mumbai-atvm/atvm/network"
)

//go:embed mumbai.yaml
var mumbaiYAML []byte

// StationSpec is one station entry of a line
type StationSpec struct {
	Name  string  `yaml:"name" validate:"required"`
	Local string  `yaml:"local"`
	Km    float64 `yaml:"km" validate:"gte=0"`
}

// LineSpec is one line with its stations in physical order
type LineSpec struct {
	ID       string        `yaml:"id" validate:"required"`
	Name     string        `yaml:"name" validate:"required"`
	Stations []StationSpec `yaml:"stations" validate:"required,min=1,dive"`
}

// HubSpec is one interchange between two lines
type HubSpec struct {
	LineA   string  `yaml:"line_a" validate:"required"`
	LineB   string  `yaml:"line_b" validate:"required,nefield=LineA"`
	KmA     float64 `yaml:"km_a" validate:"gte=0"`
	KmB     float64 `yaml:"km_b" validate:"gte=0"`
	Station string  `yaml:"station" validate:"required"`
}

// StageSpec is one fare stage; MaxKm is omitted for the final stage
type StageSpec struct {
	MaxKm *float64 `yaml:"max_km,omitempty" validate:"omitempty,gt=0"`
	Fare  int      `yaml:"fare" validate:"gte=0"`
}

// Dataset is the YAML document root
type Dataset struct {
	Lines      []LineSpec  `yaml:"lines" validate:"required,min=1,dive"`
	Hubs       []HubSpec   `yaml:"hubs" validate:"dive"`
	FareStages []StageSpec `yaml:"fare_stages" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Parse decodes and validates a YAML dataset
func Parse(r io.Reader) (*Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if err := validate.Struct(&ds); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return &ds, nil
}

// LoadFile reads a YAML dataset from disk
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Default returns the embedded Mumbai suburban dataset
func Default() *Dataset {
	ds, err := Parse(bytes.NewReader(mumbaiYAML))
	if err != nil {
		// The embedded file is covered by tests
		panic(err)
	}
	return ds
}

// Models converts the document into domain lines, hubs and fare stages
func (ds *Dataset) Models() ([]models.Line, []models.Hub, []models.FareStage) {
	lines := make([]models.Line, 0, len(ds.Lines))
	for _, l := range ds.Lines {
		id := models.LineID(l.ID)
		stations := make([]models.Station, 0, len(l.Stations))
		for _, s := range l.Stations {
			stations = append(stations, models.Station{
				Name:       s.Name,
				LocalLabel: s.Local,
				Line:       id,
				PositionKm: s.Km,
			})
		}
		lines = append(lines, models.Line{ID: id, Name: l.Name, Stations: stations})
	}

	hubs := make([]models.Hub, 0, len(ds.Hubs))
	for _, h := range ds.Hubs {
		hubs = append(hubs, models.Hub{
			LineA:     models.LineID(h.LineA),
			LineB:     models.LineID(h.LineB),
			PositionA: h.KmA,
			PositionB: h.KmB,
			Station:   h.Station,
		})
	}

	stages := make([]models.FareStage, 0, len(ds.FareStages))
	for _, st := range ds.FareStages {
		stages = append(stages, models.FareStage{MaxDistanceKm: st.MaxKm, Fare: st.Fare})
	}

	return lines, hubs, stages
}

// Build validates the catalog invariants and returns the network and fare table
func (ds *Dataset) Build() (*network.Network, *fare.Table, error) {
	lines, hubs, stages := ds.Models()

	net, err := network.New(lines, hubs)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid network: %w", err)
	}
	table, err := fare.NewTable(stages)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid fare table: %w", err)
	}
	return net, table, nil
}

// FromModels builds a dataset document from domain values, e.g. rows read
// back from a store
func FromModels(lines []models.Line, hubs []models.Hub, stages []models.FareStage) *Dataset {
	ds := &Dataset{
		Lines:      make([]LineSpec, 0, len(lines)),
		Hubs:       make([]HubSpec, 0, len(hubs)),
		FareStages: make([]StageSpec, 0, len(stages)),
	}
	for _, l := range lines {
		spec := LineSpec{ID: string(l.ID), Name: l.Name, Stations: make([]StationSpec, 0, len(l.Stations))}
		for _, s := range l.Stations {
			spec.Stations = append(spec.Stations, StationSpec{Name: s.Name, Local: s.LocalLabel, Km: s.PositionKm})
		}
		ds.Lines = append(ds.Lines, spec)
	}
	for _, h := range hubs {
		ds.Hubs = append(ds.Hubs, HubSpec{
			LineA:   string(h.LineA),
			LineB:   string(h.LineB),
			KmA:     h.PositionA,
			KmB:     h.PositionB,
			Station: h.Station,
		})
	}
	for _, st := range stages {
		ds.FareStages = append(ds.FareStages, StageSpec{MaxKm: st.MaxDistanceKm, Fare: st.Fare})
	}
	return ds
}

// Marshal encodes the dataset as YAML
func (ds *Dataset) Marshal() ([]byte, error) {
	return yaml.Marshal(ds)
}
