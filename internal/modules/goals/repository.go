package goals

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when no matching goal exists
var ErrNotFound = errors.New("goal not found")

// Repository handles goal persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new goal repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "goals").Logger(),
	}
}

// Create inserts a new goal
func (r *Repository) Create(goal *Goal) (*Goal, error) {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	if goal.Status == "" {
		goal.Status = StatusActive
	}
	goal.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	query := `
		INSERT INTO goals (uuid, user_id, goal_name, target_amount, current_amount, deadline, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(
		query,
		goal.ID,
		goal.UserID,
		goal.Name,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.Deadline,
		goal.Status,
		goal.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert goal: %w", err)
	}

	return goal, nil
}

// ListByUser returns all goals for a user, newest first
func (r *Repository) ListByUser(userID int64) ([]Goal, error) {
	query := `
		SELECT uuid, user_id, goal_name, target_amount, current_amount, deadline, status, created_at
		FROM goals
		WHERE user_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var result []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.Status, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

// ActiveByUser returns a user's active goals
func (r *Repository) ActiveByUser(userID int64) ([]Goal, error) {
	all, err := r.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	var active []Goal
	for _, g := range all {
		if g.Status == StatusActive {
			active = append(active, g)
		}
	}
	return active, nil
}

// GetActiveByName finds a user's active goal by name
func (r *Repository) GetActiveByName(userID int64, name string) (*Goal, error) {
	query := `
		SELECT uuid, user_id, goal_name, target_amount, current_amount, deadline, status, created_at
		FROM goals
		WHERE user_id = ? AND goal_name = ? AND status = ?
	`
	var g Goal
	err := r.db.QueryRow(query, userID, name, StatusActive).
		Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.Status, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &g, nil
}

// UpdateProgress sets a goal's accumulated amount and status
func (r *Repository) UpdateProgress(goalID string, currentAmount float64, status string) error {
	result, err := r.db.Exec(`UPDATE goals SET current_amount = ?, status = ? WHERE uuid = ?`, currentAmount, status, goalID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user's goal by name
func (r *Repository) Delete(userID int64, name string) error {
	result, err := r.db.Exec(`DELETE FROM goals WHERE user_id = ? AND goal_name = ?`, userID, name)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
