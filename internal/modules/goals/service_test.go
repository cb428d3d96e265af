package goals

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelzach/KaroBuddy/internal/database"
	"github.com/abelzach/KaroBuddy/internal/events"
	"github.com/abelzach/KaroBuddy/internal/modules/transactions"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db.Conn()))
	require.NoError(t, transactions.InitSchema(db.Conn()))
	return db.Conn()
}

func newTestService(t *testing.T) (*Service, *transactions.Repository) {
	t.Helper()

	db := setupTestDB(t)
	txRepo := transactions.NewRepository(db, zerolog.Nop())
	service := NewService(
		NewRepository(db, zerolog.Nop()),
		txRepo,
		events.NewManager(zerolog.Nop()),
		zerolog.Nop(),
	)
	return service, txRepo
}

func TestService_CreateWithDefaultDeadline(t *testing.T) {
	service, _ := newTestService(t)

	goal, err := service.Create(1, "Emergency Fund", 100000, "")
	require.NoError(t, err)

	assert.NotEmpty(t, goal.ID)
	assert.Equal(t, StatusActive, goal.Status)
	assert.NotEmpty(t, goal.Deadline, "deadline should default to a year out")
	assert.Equal(t, 0.0, goal.CurrentAmount)
}

func TestService_CreateValidation(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Create(1, "", 1000, "")
	assert.ErrorIs(t, err, ErrInvalidGoal)

	_, err = service.Create(1, "Vacation", 0, "")
	assert.ErrorIs(t, err, ErrInvalidGoal)
}

func TestService_AllocateProgressAndLedger(t *testing.T) {
	service, txRepo := newTestService(t)

	_, err := service.Create(1, "Vacation", 50000, "2025-06-01")
	require.NoError(t, err)

	goal, err := service.Allocate(1, "Vacation", 5000)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, goal.CurrentAmount)
	assert.Equal(t, StatusActive, goal.Status)

	// Allocation appears in the ledger as a goal_allocation outflow
	txs, err := txRepo.GetByUser(1)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, -5000.0, txs[0].Amount)
	assert.Equal(t, "goal_allocation", txs[0].Category)
}

func TestService_AllocateCompletesGoal(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Create(2, "Laptop", 1000, "")
	require.NoError(t, err)

	goal, err := service.Allocate(2, "Laptop", 1200)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, goal.Status)

	// Completed goals no longer accept allocations
	_, err = service.Allocate(2, "Laptop", 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_AllocateUnknownGoal(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Allocate(1, "Nope", 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_TotalRemaining(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Create(3, "Fund A", 1000, "")
	require.NoError(t, err)
	_, err = service.Create(3, "Fund B", 500, "")
	require.NoError(t, err)

	_, err = service.Allocate(3, "Fund A", 400)
	require.NoError(t, err)

	remaining, err := service.TotalRemaining(3)
	require.NoError(t, err)
	assert.Equal(t, 1100.0, remaining)

	// Completing a goal removes it from the remaining total
	_, err = service.Allocate(3, "Fund B", 500)
	require.NoError(t, err)

	remaining, err = service.TotalRemaining(3)
	require.NoError(t, err)
	assert.Equal(t, 600.0, remaining)
}

func TestService_Delete(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Create(4, "Old Goal", 100, "")
	require.NoError(t, err)

	require.NoError(t, service.Delete(4, "Old Goal"))
	assert.ErrorIs(t, service.Delete(4, "Old Goal"), ErrNotFound)
}
