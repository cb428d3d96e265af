package cashflow

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/abelzach/KaroBuddy/internal/domain"
)

const maxHorizonDays = 3650

// Handler exposes the stateless forecast endpoint
type Handler struct {
	forecaster     *Forecaster
	defaultHorizon int
	log            zerolog.Logger
}

// NewHandler creates a new cash flow handler
func NewHandler(forecaster *Forecaster, defaultHorizon int, log zerolog.Logger) *Handler {
	return &Handler{
		forecaster:     forecaster,
		defaultHorizon: defaultHorizon,
		log:            log.With().Str("handler", "cashflow").Logger(),
	}
}

// HandleForecast handles POST /forecast
func (h *Handler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	var req ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	horizon := req.HorizonDays
	if horizon == 0 {
		horizon = h.defaultHorizon
	}
	if horizon < 1 || horizon > maxHorizonDays {
		http.Error(w, "Invalid horizon_days. Must be 1-3650", http.StatusBadRequest)
		return
	}

	txs := make([]domain.Transaction, 0, len(req.Transactions))
	for _, in := range req.Transactions {
		txs = append(txs, domain.Transaction{
			ID:          in.ID,
			Date:        in.Date,
			Amount:      in.Amount,
			Description: in.Description,
			Currency:    in.Currency,
		})
	}

	prediction := h.forecaster.Forecast(r.Context(), txs, horizon)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(prediction); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode forecast response")
	}
}
