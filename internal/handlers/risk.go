package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/findosh/sextant/internal/models"
	"github.com/findosh/sextant/internal/services/risk"
)

// CreateRiskProfile stores a new risk profile for the user and returns the
// immediately computed first assessment.
func (h *Handler) CreateRiskProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.jsonError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var profile models.RiskProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		h.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	profile.UserID = userID

	assessment, err := h.risks.CreateRiskProfile(r.Context(), &profile)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			h.jsonError(w, verr.Error(), http.StatusBadRequest)
			return
		}
		h.serverError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, assessment)
}

// AssessRisk recomputes and returns the user's risk assessment
func (h *Handler) AssessRisk(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.jsonError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	assessment, err := h.risks.AssessPortfolioRisk(r.Context(), userID)
	if err != nil {
		if errors.Is(err, risk.ErrProfileNotFound) {
			h.jsonError(w, "no risk profile for user", http.StatusNotFound)
			return
		}
		h.serverError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, assessment)
}

// StressTest returns hypothetical loss projections for the fixed scenario
// catalogue.
func (h *Handler) StressTest(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.jsonError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	scenarios, err := h.risks.PerformStressTest(r.Context(), userID)
	if err != nil {
		if errors.Is(err, risk.ErrProfileNotFound) {
			h.jsonError(w, "no risk profile for user", http.StatusNotFound)
			return
		}
		h.serverError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"scenarios": scenarios})
}

// RiskExplanation returns a short canned explanation of the user's cached
// risk level. Always 200: with no assessment it returns the sentinel text.
func (h *Handler) RiskExplanation(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.jsonError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "en"
	}

	text := h.risks.SimplifiedExplanation(userID, lang)
	h.writeJSON(w, http.StatusOK, map[string]string{
		"language":    lang,
		"explanation": text,
	})
}

func (h *Handler) serverError(w http.ResponseWriter, err error) {
	h.logger.Error("request failed", zap.Error(err))
	h.jsonError(w, "internal error", http.StatusInternalServerError)
}
