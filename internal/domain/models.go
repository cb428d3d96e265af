package domain

// DefaultCurrency is used when a transaction batch carries no currency code
const DefaultCurrency = "USD"

// Transaction represents a single signed cash-flow event.
// Positive amounts are inflows (income, sale proceeds), negative amounts
// are outflows (spending, purchases). Every consumer of the core relies on
// this convention.
type Transaction struct {
	ID          string  `json:"id,omitempty"`
	UserID      int64   `json:"user_id,omitempty"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Currency    string  `json:"currency,omitempty"`
}

// MarketData carries external market context for bias detection
type MarketData struct {
	MarketChangePct float64 `json:"market_change_pct"`
}

// Goals carries optional goal constraints into budget allocation
type Goals struct {
	SavingsGoal *float64 `json:"savings_goal,omitempty"`
}

// BatchCurrency returns the currency of a transaction batch: the first
// transaction's code, or the default when absent. Mixed-currency batches
// are not normalized (known limitation).
func BatchCurrency(txs []Transaction) string {
	if len(txs) == 0 || txs[0].Currency == "" {
		return DefaultCurrency
	}
	return txs[0].Currency
}
