package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/mumbai-atvm/atvm/models"
)

// Pinger checks a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}

// NetworkStats reports the size of the loaded network
type NetworkStats interface {
	LineIDs() []models.LineID
	StationCount() int
}

// HealthHandler reports service and dataset status
type HealthHandler struct {
	source string
	stats  NetworkStats
	store  Pinger // nil when the dataset did not come from a database
}

// NewHealthHandler creates a health handler; store may be nil
func NewHealthHandler(source string, stats NetworkStats, store Pinger) *HealthHandler {
	return &HealthHandler{source: source, stats: stats, store: store}
}

// HealthResponse is the JSON response structure for GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Source    string    `json:"source"`
	Database  string    `json:"database,omitempty"`
	Lines     int       `json:"lines"`
	Stations  int       `json:"stations"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// GetHealth handles GET /health
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Source:    h.source,
		Lines:     len(h.stats.LineIDs()),
		Stations:  h.stats.StationCount(),
		Timestamp: time.Now().UTC(),
	}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			// Fares are still served from the network loaded at startup
			response.Status = "degraded"
			response.Database = "disconnected"
			response.Error = err.Error()
			writeJSON(w, http.StatusOK, response)
			return
		}
		response.Database = "connected"
	}

	writeJSON(w, http.StatusOK, response)
}

// GetLiveness handles GET /healthz
func (h *HealthHandler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
