package genome

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxHorizonDays = 3650

// Handler handles genome HTTP requests
type Handler struct {
	service        *Service
	defaultHorizon int
	log            zerolog.Logger
}

// NewHandler creates a new genome handler
func NewHandler(service *Service, defaultHorizon int, log zerolog.Logger) *Handler {
	return &Handler{
		service:        service,
		defaultHorizon: defaultHorizon,
		log:            log.With().Str("handler", "genome").Logger(),
	}
}

// HandleGet handles GET /users/{userID}/genome - fresh compute + persist
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	horizon := h.defaultHorizon
	if horizonStr := r.URL.Query().Get("horizon"); horizonStr != "" {
		horizon, err = strconv.Atoi(horizonStr)
		if err != nil || horizon < 1 || horizon > maxHorizonDays {
			http.Error(w, "Invalid horizon. Must be 1-3650", http.StatusBadRequest)
			return
		}
	}

	result, err := h.service.Compute(r.Context(), userID, horizon, nil)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to compute genome")
		http.Error(w, "Failed to compute genome", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode genome response")
	}
}

// HandleRefresh handles POST /users/{userID}/genome/refresh. It is the
// same compute-and-persist path as HandleGet with the default horizon,
// exposed as a POST so dashboards can force a refresh.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	result, err := h.service.Compute(r.Context(), userID, h.defaultHorizon, nil)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to refresh genome")
		http.Error(w, "Failed to refresh genome", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode genome response")
	}
}

// HandleGetStored handles GET /users/{userID}/genome/stored - last persisted snapshot
func (h *Handler) HandleGetStored(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	rec, err := h.service.Stored(userID)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "No stored genome for user", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to load stored genome")
		http.Error(w, "Failed to load stored genome", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"user_id":                  rec.UserID,
		"income_volatility_score":  rec.VolatilityScore,
		"predicted_cash_flow_json": rec.PredictionJSON,
		"budget_allocation_json":   rec.AllocationJSON,
		"last_updated":             rec.LastUpdated,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode stored genome response")
	}
}
