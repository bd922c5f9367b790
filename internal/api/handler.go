package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"stock-advisor/advisor"
	"stock-advisor/config"
	"stock-advisor/internal/app"
	"stock-advisor/models"
	"stock-advisor/observability"
	"stock-advisor/services"

	"github.com/go-chi/chi/v5"
)

// Handler handles HTTP API requests
type Handler struct {
	app *app.App
	cfg *config.Config
}

// NewHandler creates a new Handler
func NewHandler(application *app.App, cfg *config.Config) *Handler {
	return &Handler{app: application, cfg: cfg}
}

// HandleChat answers a free-text market question
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var query models.Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		h.jsonError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(query.Text) == "" {
		observability.GetMetrics().RecordQueryError("empty_query")
		h.jsonError(w, "Query required", http.StatusBadRequest)
		return
	}

	resp, err := h.app.Ask(r.Context(), query)
	if err != nil {
		if errors.Is(err, advisor.ErrEmptyQuery) {
			observability.GetMetrics().RecordQueryError("empty_query")
			h.jsonError(w, "Query required", http.StatusBadRequest)
			return
		}
		if strings.Contains(err.Error(), "queue full") {
			observability.GetMetrics().RecordQueryError("queue_full")
			h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		observability.GetMetrics().RecordQueryError("internal")
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.jsonResponse(w, resp)
}

// HandleHealth returns the health status of the application
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"services": map[string]string{
			"database": "unknown",
		},
	}

	if h.app.Repo() != nil {
		ctx := r.Context()
		if err := h.app.Repo().Health(ctx); err == nil {
			status["services"].(map[string]string)["database"] = "connected"
		} else {
			status["services"].(map[string]string)["database"] = "disconnected"
			status["status"] = "degraded"
		}
	} else {
		status["services"].(map[string]string)["database"] = "not_configured"
	}

	// Add circuit breaker status
	cbStatus := services.GetGlobalRegistry().Status()
	status["circuit_breakers"] = cbStatus

	// Check if any breakers are open (degraded state)
	for _, cb := range cbStatus {
		if cb.State == "open" {
			status["status"] = "degraded"
			break
		}
	}

	h.jsonResponse(w, status)
}

// HandleGetRecommendations returns recent advice history
func (h *Handler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	limit := h.ParseLimitParam(r, 50)
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))

	recs, err := h.app.GetRecommendations(r.Context(), symbol, limit)
	if err != nil {
		if strings.Contains(err.Error(), "database not initialized") {
			h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if recs == nil {
		recs = []models.Recommendation{}
	}
	h.jsonResponse(w, recs)
}

// HandleGetRecommendation returns a single advice-history entry by ID
func (h *Handler) HandleGetRecommendation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.jsonError(w, "Missing recommendation ID", http.StatusBadRequest)
		return
	}

	rec, err := h.app.GetRecommendationByID(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "invalid UUID") {
			h.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rec == nil {
		h.jsonError(w, "Recommendation not found", http.StatusNotFound)
		return
	}

	h.jsonResponse(w, rec)
}

// Helper functions

// ParseLimitParam parses the limit query parameter
func (h *Handler) ParseLimitParam(r *http.Request, defaultLimit int) int {
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			return l
		}
	}
	return defaultLimit
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
