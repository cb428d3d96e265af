package goals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles goal HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new goals handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "goals").Logger(),
	}
}

type createGoalRequest struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
	Deadline     string  `json:"deadline,omitempty"`
}

type allocateGoalRequest struct {
	Amount float64 `json:"amount"`
}

// HandleCreate handles POST /users/{userID}/goals
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := h.service.Create(userID, req.Name, req.TargetAmount, req.Deadline)
	if err != nil {
		if errors.Is(err, ErrInvalidGoal) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Msg("Failed to create goal")
		http.Error(w, "Failed to create goal", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, goal)
}

// HandleList handles GET /users/{userID}/goals
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	list, err := h.service.List(userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list goals")
		http.Error(w, "Failed to list goals", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []Goal{}
	}

	h.writeJSON(w, http.StatusOK, list)
}

// HandleAllocate handles POST /users/{userID}/goals/{name}/allocate
func (h *Handler) HandleAllocate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")

	var req allocateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount <= 0 {
		http.Error(w, "Invalid allocation amount", http.StatusBadRequest)
		return
	}

	goal, err := h.service.Allocate(userID, name, req.Amount)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Goal not found or already completed", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("goal", name).Msg("Failed to allocate to goal")
		http.Error(w, "Failed to allocate to goal", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, goal)
}

// HandleDelete handles DELETE /users/{userID}/goals/{name}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")

	if err := h.service.Delete(userID, name); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Goal not found", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("goal", name).Msg("Failed to delete goal")
		http.Error(w, "Failed to delete goal", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return 0, false
	}
	return userID, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
