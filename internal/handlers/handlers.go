// Package handlers provides HTTP request handlers
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/findosh/sextant/internal/config"
	"github.com/findosh/sextant/internal/services/risk"
)

// Handler contains all HTTP handlers and dependencies
type Handler struct {
	cfg    *config.Config
	risks  *risk.Service
	logger *zap.Logger
}

// New creates a new handler with all dependencies
func New(cfg *config.Config, risks *risk.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		cfg:    cfg,
		risks:  risks,
		logger: logger,
	}
}

// Routes registers all API routes on a new router
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/users/{userID}/risk-profile", h.CreateRiskProfile).Methods(http.MethodPost)
	api.HandleFunc("/users/{userID}/risk-assessment", h.AssessRisk).Methods(http.MethodGet)
	api.HandleFunc("/users/{userID}/stress-test", h.StressTest).Methods(http.MethodGet)
	api.HandleFunc("/users/{userID}/risk-explanation", h.RiskExplanation).Methods(http.MethodGet)

	return r
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) userID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["userID"])
	return id, err == nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
