package genome

import (
	"github.com/abelzach/KaroBuddy/internal/modules/bias"
	"github.com/abelzach/KaroBuddy/internal/modules/budget"
	"github.com/abelzach/KaroBuddy/internal/modules/cashflow"
)

// Genome is the combined Dynamic Financial Genome for one user: forecast,
// volatility, budget and detected biases over a horizon. Allocation is nil
// when budgeting was not possible (zero predicted income); AllocationError
// then carries the user-facing reason.
type Genome struct {
	UserID          int64                        `json:"user_id"`
	HorizonDays     int                          `json:"horizon_days"`
	Prediction      cashflow.CashFlowPrediction  `json:"prediction"`
	Allocation      *budget.BudgetAllocation     `json:"allocation,omitempty"`
	AllocationError string                       `json:"allocation_error,omitempty"`
	DetectedBiases  []bias.DetectedBias          `json:"detected_biases"`
	LastUpdated     string                       `json:"last_updated"`
}

// Record is the persisted form of a genome
type Record struct {
	UserID               int64
	VolatilityScore      float64
	PredictionJSON       string
	AllocationJSON       string // empty when allocation failed
	LastUpdated          string
}
