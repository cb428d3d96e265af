package cashflow

// CashFlowPrediction is the forecast result for a single horizon.
// All monetary fields are non-negative except NetCashFlow.
type CashFlowPrediction struct {
	PredictedIncome   float64 `json:"predicted_income"`
	PredictedExpenses float64 `json:"predicted_expenses"`
	NetCashFlow       float64 `json:"net_cash_flow"`
	VolatilityScore   float64 `json:"volatility_score"`
	Currency          string  `json:"currency"`
}

// ForecastRequest is the stateless forecast API payload
type ForecastRequest struct {
	Transactions []TransactionInput `json:"transactions"`
	HorizonDays  int                `json:"horizon_days"`
}

// TransactionInput mirrors domain.Transaction for API ingestion
type TransactionInput struct {
	ID          string  `json:"id,omitempty"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Currency    string  `json:"currency,omitempty"`
}
