package transactions

import "database/sql"

// Schema for the transaction ledger. Users are identified by the chat
// platform id handed over by the surrounding assistant.
const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    uuid TEXT UNIQUE NOT NULL,
    user_id INTEGER NOT NULL,
    amount REAL NOT NULL,
    category TEXT,
    description TEXT,
    currency TEXT,
    date TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id);
CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date);
`

// InitSchema ensures the transactions table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
