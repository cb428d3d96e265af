package genome

import "database/sql"

// One row per user, overwritten on each refresh
const Schema = `
CREATE TABLE IF NOT EXISTS dynamic_financial_genome (
    user_id INTEGER PRIMARY KEY,
    income_volatility_score REAL NOT NULL,
    predicted_cash_flow_json TEXT NOT NULL,
    budget_allocation_json TEXT,
    last_updated TEXT NOT NULL
);
`

// InitSchema ensures the genome table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
