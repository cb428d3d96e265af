package budget

// BudgetAllocation is the needs/wants/savings split for one prediction.
// Allocations are non-negative and sum to the predicted income within
// rounding tolerance.
type BudgetAllocation struct {
	NeedsAllocation   float64 `json:"needs_allocation"`
	WantsAllocation   float64 `json:"wants_allocation"`
	SavingsAllocation float64 `json:"savings_allocation"`
	Currency          string  `json:"currency"`
	Notes             string  `json:"notes"`
	// GoalFeasible reports whether a supplied savings goal fit within the
	// adjustable part of the budget. True when no goal was supplied.
	GoalFeasible bool `json:"goal_feasible"`
}
