package goals

// Goal statuses
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Goal is a user savings target with allocated progress
type Goal struct {
	ID            string  `json:"id"`
	UserID        int64   `json:"user_id"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Deadline      string  `json:"deadline"` // YYYY-MM-DD
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
}

// Remaining is the amount still needed to reach the target
func (g *Goal) Remaining() float64 {
	remaining := g.TargetAmount - g.CurrentAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}
