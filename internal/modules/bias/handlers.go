package bias

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/abelzach/KaroBuddy/internal/domain"
)

// DetectRequest is the bias detection API payload
type DetectRequest struct {
	Transactions []domain.Transaction `json:"transactions"`
	MarketData   *domain.MarketData   `json:"market_data,omitempty"`
}

// Handler exposes bias detection over HTTP
type Handler struct {
	detector *Detector
	log      zerolog.Logger
}

// NewHandler creates a new bias handler
func NewHandler(detector *Detector, log zerolog.Logger) *Handler {
	return &Handler{
		detector: detector,
		log:      log.With().Str("handler", "bias").Logger(),
	}
}

// HandleDetect handles POST /detect
func (h *Handler) HandleDetect(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	detected := h.detector.Detect(req.Transactions, req.MarketData)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(detected); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode bias response")
	}
}
