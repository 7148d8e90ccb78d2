package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/patrickmn/go-cache"

	"github.com/mumbai-atvm/atvm/models"
)

// StationCatalog defines the network queries the station endpoints need
type StationCatalog interface {
	Lines() []models.Line
	StationsOnLine(line models.LineID) ([]models.Station, error)
	Search(line models.LineID, query string) ([]models.Station, error)
}

// StationHandler handles HTTP requests for lines and stations
type StationHandler struct {
	catalog StationCatalog
	results *cache.Cache
}

// NewStationHandler creates a handler whose search results live for ttl
func NewStationHandler(catalog StationCatalog, ttl time.Duration) *StationHandler {
	return &StationHandler{
		catalog: catalog,
		results: cache.New(ttl, 2*ttl),
	}
}

// LineSummary is one entry of GET /api/lines
type LineSummary struct {
	ID           models.LineID `json:"id"`
	Name         string        `json:"name"`
	StationCount int           `json:"stationCount"`
}

// GetLinesResponse is the JSON response structure for GET /api/lines
type GetLinesResponse struct {
	Lines []LineSummary `json:"lines"`
	Count int           `json:"count"`
}

// GetStationsResponse is the JSON response structure for GET /api/lines/{lineID}/stations
type GetStationsResponse struct {
	Line     models.LineID    `json:"line"`
	Query    string           `json:"query,omitempty"`
	Stations []models.Station `json:"stations"`
	Count    int              `json:"count"`
}

// GetLines handles GET /api/lines
func (h *StationHandler) GetLines(w http.ResponseWriter, r *http.Request) {
	lines := h.catalog.Lines()
	summaries := make([]LineSummary, 0, len(lines))
	for _, l := range lines {
		stations, err := h.catalog.StationsOnLine(l.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to list lines", map[string]interface{}{
				"internal": err.Error(),
			})
			return
		}
		summaries = append(summaries, LineSummary{ID: l.ID, Name: l.Name, StationCount: len(stations)})
	}

	// Reference data only changes on restart
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, GetLinesResponse{Lines: summaries, Count: len(summaries)})
}

// GetStations handles GET /api/lines/{lineID}/stations
// Returns the canonical station order, optionally filtered by ?q=
func (h *StationHandler) GetStations(w http.ResponseWriter, r *http.Request) {
	lineID := models.LineID(chi.URLParam(r, "lineID"))
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	// Keyed on the exact query, which the cached response echoes back
	key := fmt.Sprintf("stations:%s:%s", lineID, query)
	if cached, ok := h.results.Get(key); ok {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		writeJSON(w, http.StatusOK, cached)
		return
	}

	stations, err := h.catalog.Search(lineID, query)
	if err != nil {
		var unknown *models.UnknownLineError
		if errors.As(err, &unknown) {
			writeError(w, http.StatusNotFound, "Unknown line", map[string]interface{}{
				"lineId": string(lineID),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to list stations", map[string]interface{}{
			"internal": err.Error(),
		})
		return
	}

	response := GetStationsResponse{
		Line:     lineID,
		Query:    query,
		Stations: stations,
		Count:    len(stations),
	}
	h.results.SetDefault(key, response)

	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, response)
}
