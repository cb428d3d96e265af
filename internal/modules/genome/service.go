package genome

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/abelzach/KaroBuddy/internal/domain"
	"github.com/abelzach/KaroBuddy/internal/events"
	"github.com/abelzach/KaroBuddy/internal/modules/bias"
	"github.com/abelzach/KaroBuddy/internal/modules/budget"
	"github.com/abelzach/KaroBuddy/internal/modules/cashflow"
)

// TransactionSource supplies a user's chronologically ordered transactions.
// The core never owns the store; it receives data through this port.
type TransactionSource interface {
	GetByUser(userID int64) ([]domain.Transaction, error)
	ListUserIDs() ([]int64, error)
}

// GoalSource supplies savings-goal pressure for budget allocation
type GoalSource interface {
	TotalRemaining(userID int64) (float64, error)
}

// Service assembles the Dynamic Financial Genome: it pulls the user's
// transactions through the ports, runs the forecaster, bias detector and
// allocator, and persists the combined result.
type Service struct {
	txSource   TransactionSource
	goalSource GoalSource
	forecaster *cashflow.Forecaster
	detector   *bias.Detector
	allocator  *budget.Allocator
	repo       *Repository
	events     *events.Manager
	log        zerolog.Logger
}

// NewService creates a new genome service
func NewService(
	txSource TransactionSource,
	goalSource GoalSource,
	forecaster *cashflow.Forecaster,
	detector *bias.Detector,
	allocator *budget.Allocator,
	repo *Repository,
	eventManager *events.Manager,
	log zerolog.Logger,
) *Service {
	return &Service{
		txSource:   txSource,
		goalSource: goalSource,
		forecaster: forecaster,
		detector:   detector,
		allocator:  allocator,
		repo:       repo,
		events:     eventManager,
		log:        log.With().Str("service", "genome").Logger(),
	}
}

// Compute builds a fresh genome for the user and persists it. marketData
// may be nil; it only gates the panic-selling rule. Zero predicted income
// is a recoverable condition reported inside the genome, never an error.
func (s *Service) Compute(ctx context.Context, userID int64, horizonDays int, marketData *domain.MarketData) (*Genome, error) {
	txs, err := s.txSource.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	prediction := s.forecaster.Forecast(ctx, txs, horizonDays)
	detected := s.detector.Detect(txs, marketData)

	goals, err := s.goalPressure(userID)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("Failed to load goal pressure, budgeting without goals")
		goals = nil
	}

	result := &Genome{
		UserID:         userID,
		HorizonDays:    horizonDays,
		Prediction:     prediction,
		DetectedBiases: detected,
		LastUpdated:    time.Now().UTC().Format(time.RFC3339),
	}

	allocation, err := s.allocator.Allocate(prediction, goals)
	switch {
	case err == nil:
		result.Allocation = &allocation
	case errors.Is(err, budget.ErrZeroIncome):
		result.AllocationError = err.Error()
	default:
		return nil, err
	}

	if err := s.persist(result); err != nil {
		return nil, err
	}

	if len(detected) > 0 {
		s.events.Emit(events.BiasDetected, "genome", map[string]interface{}{
			"user_id": userID,
			"count":   len(detected),
		})
	}
	s.events.Emit(events.GenomeRefreshed, "genome", map[string]interface{}{
		"user_id":    userID,
		"volatility": prediction.VolatilityScore,
	})

	return result, nil
}

// RefreshAll recomputes every known user's genome with the given horizon.
// Per-user failures are logged and counted, not propagated; the refresh
// keeps going.
func (s *Service) RefreshAll(ctx context.Context, horizonDays int) (refreshed, failed int) {
	userIDs, err := s.txSource.ListUserIDs()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list users for genome refresh")
		return 0, 0
	}

	for _, userID := range userIDs {
		if _, err := s.Compute(ctx, userID, horizonDays, nil); err != nil {
			failed++
			s.events.EmitError("genome", err, map[string]interface{}{"user_id": userID})
			continue
		}
		refreshed++
	}

	s.log.Info().Int("refreshed", refreshed).Int("failed", failed).Msg("Genome refresh complete")
	return refreshed, failed
}

// Stored returns the persisted genome record for a user
func (s *Service) Stored(userID int64) (*Record, error) {
	return s.repo.Get(userID)
}

func (s *Service) goalPressure(userID int64) (*domain.Goals, error) {
	remaining, err := s.goalSource.TotalRemaining(userID)
	if err != nil {
		return nil, err
	}
	if remaining <= 0 {
		return nil, nil
	}
	return &domain.Goals{SavingsGoal: &remaining}, nil
}

func (s *Service) persist(g *Genome) error {
	predictionJSON, err := json.Marshal(g.Prediction)
	if err != nil {
		return err
	}

	rec := &Record{
		UserID:          g.UserID,
		VolatilityScore: g.Prediction.VolatilityScore,
		PredictionJSON:  string(predictionJSON),
		LastUpdated:     g.LastUpdated,
	}
	if g.Allocation != nil {
		allocationJSON, err := json.Marshal(g.Allocation)
		if err != nil {
			return err
		}
		rec.AllocationJSON = string(allocationJSON)
	}

	return s.repo.Upsert(rec)
}
