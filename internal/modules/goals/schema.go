package goals

import "database/sql"

const Schema = `
CREATE TABLE IF NOT EXISTS goals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    uuid TEXT UNIQUE NOT NULL,
    user_id INTEGER NOT NULL,
    goal_name TEXT NOT NULL,
    target_amount REAL NOT NULL,
    current_amount REAL NOT NULL DEFAULT 0,
    deadline TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'active',
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_goals_user_name ON goals(user_id, goal_name);
`

// InitSchema ensures the goals table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
