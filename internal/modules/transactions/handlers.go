package transactions

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/abelzach/KaroBuddy/internal/domain"
)

// Handler handles transaction HTTP requests
type Handler struct {
	repo *Repository
	log  zerolog.Logger
}

// NewHandler creates a new transactions handler
func NewHandler(repo *Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "transactions").Logger(),
	}
}

// HandleCreate handles POST / - ingest one normalized transaction
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var tx domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if tx.UserID == 0 {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	if !isValidDate(tx.Date) {
		http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	created, err := h.repo.Create(&tx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create transaction")
		http.Error(w, "Failed to create transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// HandleGetByUser handles GET /users/{userID}/transactions
func (h *Handler) HandleGetByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	since := r.URL.Query().Get("since")
	if since != "" && !isValidDate(since) {
		http.Error(w, "Invalid since date. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	var txs []domain.Transaction
	if since != "" {
		txs, err = h.repo.GetByUserSince(userID, since)
	} else {
		txs, err = h.repo.GetByUser(userID)
	}
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get transactions")
		http.Error(w, "Failed to retrieve transactions", http.StatusInternalServerError)
		return
	}

	if txs == nil {
		txs = []domain.Transaction{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(txs)
}

func isValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
