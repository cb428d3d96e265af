package budget

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/abelzach/KaroBuddy/internal/domain"
	"github.com/abelzach/KaroBuddy/internal/modules/cashflow"
)

// AllocateRequest is the budget allocation API payload
type AllocateRequest struct {
	Prediction cashflow.CashFlowPrediction `json:"prediction"`
	Goals      *domain.Goals               `json:"goals,omitempty"`
}

// Handler exposes budget allocation over HTTP
type Handler struct {
	allocator *Allocator
	log       zerolog.Logger
}

// NewHandler creates a new budget handler
func NewHandler(allocator *Allocator, log zerolog.Logger) *Handler {
	return &Handler{
		allocator: allocator,
		log:       log.With().Str("handler", "budget").Logger(),
	}
}

// HandleAllocate handles POST /allocate
func (h *Handler) HandleAllocate(w http.ResponseWriter, r *http.Request) {
	var req AllocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	allocation, err := h.allocator.Allocate(req.Prediction, req.Goals)
	if err != nil {
		if errors.Is(err, ErrZeroIncome) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("Failed to allocate budget")
		http.Error(w, "Failed to allocate budget", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(allocation); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode allocation response")
	}
}
