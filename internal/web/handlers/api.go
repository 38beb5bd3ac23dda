package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/arname-match/internal/store"
)

// APIHandler serves the operational endpoints
type APIHandler struct {
	db    *sql.DB
	store *store.Store
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(db *sql.DB, st *store.Store) *APIHandler {
	return &APIHandler{db: db, store: st}
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// Health handles GET /api/health
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.db.Ping(); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// StatsResponse reports the size of the indexed corpus
type StatsResponse struct {
	Records int `json:"records"`
	Keys    int `json:"keys"`
}

// GetStats handles GET /api/stats
func (h *APIHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read stats")
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		Records: stats.Records,
		Keys:    stats.Keys,
	})
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
