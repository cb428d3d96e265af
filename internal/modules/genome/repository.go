package genome

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a user has no stored genome
var ErrNotFound = errors.New("genome not found")

// Repository handles genome persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new genome repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "genome").Logger(),
	}
}

// Upsert stores a user's genome, replacing any previous row
func (r *Repository) Upsert(rec *Record) error {
	query := `
		INSERT INTO dynamic_financial_genome (user_id, income_volatility_score, predicted_cash_flow_json, budget_allocation_json, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			income_volatility_score = excluded.income_volatility_score,
			predicted_cash_flow_json = excluded.predicted_cash_flow_json,
			budget_allocation_json = excluded.budget_allocation_json,
			last_updated = excluded.last_updated
	`
	var allocation interface{}
	if rec.AllocationJSON != "" {
		allocation = rec.AllocationJSON
	}

	_, err := r.db.Exec(query, rec.UserID, rec.VolatilityScore, rec.PredictionJSON, allocation, rec.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert genome: %w", err)
	}
	return nil
}

// Get retrieves a user's stored genome
func (r *Repository) Get(userID int64) (*Record, error) {
	query := `
		SELECT user_id, income_volatility_score, predicted_cash_flow_json, budget_allocation_json, last_updated
		FROM dynamic_financial_genome
		WHERE user_id = ?
	`
	var rec Record
	var allocation sql.NullString
	err := r.db.QueryRow(query, userID).
		Scan(&rec.UserID, &rec.VolatilityScore, &rec.PredictionJSON, &allocation, &rec.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get genome: %w", err)
	}
	rec.AllocationJSON = allocation.String
	return &rec, nil
}
