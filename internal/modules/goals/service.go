package goals

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/abelzach/KaroBuddy/internal/domain"
	"github.com/abelzach/KaroBuddy/internal/events"
	"github.com/abelzach/KaroBuddy/internal/modules/transactions"
)

// Default deadline when the user does not supply one
const defaultDeadlineDays = 365

// ErrInvalidGoal is returned for goals without a name or positive target
var ErrInvalidGoal = errors.New("goal requires a name and a positive target amount")

// Service handles goal business logic. Allocations to a goal are recorded
// in the transaction ledger under the goal_allocation category so they do
// not count as plain expenses.
type Service struct {
	repo   *Repository
	txRepo *transactions.Repository
	events *events.Manager
	log    zerolog.Logger
}

// NewService creates a new goals service
func NewService(repo *Repository, txRepo *transactions.Repository, eventManager *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		txRepo: txRepo,
		events: eventManager,
		log:    log.With().Str("service", "goals").Logger(),
	}
}

// Create registers a new goal. Deadline defaults to one year out.
func (s *Service) Create(userID int64, name string, targetAmount float64, deadline string) (*Goal, error) {
	if name == "" || targetAmount <= 0 {
		return nil, ErrInvalidGoal
	}
	if deadline == "" {
		deadline = time.Now().UTC().AddDate(0, 0, defaultDeadlineDays).Format("2006-01-02")
	}

	goal, err := s.repo.Create(&Goal{
		UserID:       userID,
		Name:         name,
		TargetAmount: targetAmount,
		Deadline:     deadline,
	})
	if err != nil {
		return nil, err
	}

	s.events.Emit(events.GoalCreated, "goals", map[string]interface{}{
		"user_id": userID,
		"goal":    name,
		"target":  targetAmount,
	})

	return goal, nil
}

// List returns all of a user's goals
func (s *Service) List(userID int64) ([]Goal, error) {
	return s.repo.ListByUser(userID)
}

// Allocate adds funds to an active goal, logs the allocation in the
// ledger, and completes the goal once the target is reached.
func (s *Service) Allocate(userID int64, name string, amount float64) (*Goal, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("allocation amount must be positive")
	}

	goal, err := s.repo.GetActiveByName(userID, name)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount += amount
	status := StatusActive
	if goal.CurrentAmount >= goal.TargetAmount {
		status = StatusCompleted
	}
	goal.Status = status

	if err := s.repo.UpdateProgress(goal.ID, goal.CurrentAmount, status); err != nil {
		return nil, err
	}

	// Allocated funds are not expenses; keep them out of spending analysis
	_, err = s.txRepo.Create(&domain.Transaction{
		UserID:      userID,
		Date:        time.Now().UTC().Format("2006-01-02"),
		Amount:      -amount,
		Category:    "goal_allocation",
		Description: fmt.Sprintf("Allocated to %s", name),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("goal", name).Msg("Failed to log goal allocation transaction")
	}

	s.events.Emit(events.GoalAllocation, "goals", map[string]interface{}{
		"user_id": userID,
		"goal":    name,
		"amount":  amount,
	})
	if status == StatusCompleted {
		s.events.Emit(events.GoalCompleted, "goals", map[string]interface{}{
			"user_id": userID,
			"goal":    name,
		})
	}

	return goal, nil
}

// Delete removes a user's goal by name
func (s *Service) Delete(userID int64, name string) error {
	if err := s.repo.Delete(userID, name); err != nil {
		return err
	}
	s.events.Emit(events.GoalDeleted, "goals", map[string]interface{}{
		"user_id": userID,
		"goal":    name,
	})
	return nil
}

// TotalRemaining sums what is still needed across a user's active goals.
// The genome service uses it as savings-goal pressure for budgeting.
func (s *Service) TotalRemaining(userID int64) (float64, error) {
	active, err := s.repo.ActiveByUser(userID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, g := range active {
		total += g.Remaining()
	}
	return total, nil
}
