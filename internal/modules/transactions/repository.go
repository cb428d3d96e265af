package transactions

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abelzach/KaroBuddy/internal/domain"
)

// Repository handles transaction persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new transaction repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "transactions").Logger(),
	}
}

// Create inserts a new transaction. A uuid is generated when the caller
// did not supply an external id.
func (r *Repository) Create(tx *domain.Transaction) (*domain.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}

	query := `
		INSERT INTO transactions (uuid, user_id, amount, category, description, currency, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().UTC().Format("2006-01-02 15:04:05")

	_, err := r.db.Exec(
		query,
		tx.ID,
		tx.UserID,
		tx.Amount,
		tx.Category,
		tx.Description,
		tx.Currency,
		tx.Date,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return tx, nil
}

// GetByUser returns a user's transactions in chronological order
func (r *Repository) GetByUser(userID int64) ([]domain.Transaction, error) {
	query := `
		SELECT uuid, user_id, amount, category, description, currency, date
		FROM transactions
		WHERE user_id = ?
		ORDER BY date ASC, id ASC
	`
	return r.query(query, userID)
}

// GetByUserSince returns a user's transactions on or after the given date
// (YYYY-MM-DD), chronologically ordered
func (r *Repository) GetByUserSince(userID int64, since string) ([]domain.Transaction, error) {
	query := `
		SELECT uuid, user_id, amount, category, description, currency, date
		FROM transactions
		WHERE user_id = ? AND date >= ?
		ORDER BY date ASC, id ASC
	`
	return r.query(query, userID, since)
}

// ListUserIDs returns the distinct users present in the ledger
func (r *Repository) ListUserIDs() ([]int64, error) {
	rows, err := r.db.Query(`SELECT DISTINCT user_id FROM transactions ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repository) query(query string, args ...interface{}) ([]domain.Transaction, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var category, description, currency sql.NullString
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Amount, &category, &description, &currency, &tx.Date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Category = category.String
		tx.Description = description.String
		tx.Currency = currency.String
		txs = append(txs, tx)
	}

	return txs, rows.Err()
}
