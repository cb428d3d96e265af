package transactions

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelzach/KaroBuddy/internal/database"
	"github.com/abelzach/KaroBuddy/internal/domain"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db.Conn()))
	return db.Conn()
}

func TestRepository_CreateAndGetByUser(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	_, err := repo.Create(&domain.Transaction{
		UserID:      42,
		Date:        "2024-01-05",
		Amount:      -120.50,
		Description: "groceries",
		Category:    "food",
		Currency:    "USD",
	})
	require.NoError(t, err)

	created, err := repo.Create(&domain.Transaction{
		UserID: 42,
		Date:   "2024-01-01",
		Amount: 2500,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID, "uuid should be generated")

	txs, err := repo.GetByUser(42)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	// Chronological order regardless of insert order
	assert.Equal(t, "2024-01-01", txs[0].Date)
	assert.Equal(t, 2500.0, txs[0].Amount)
	assert.Equal(t, "2024-01-05", txs[1].Date)
	assert.Equal(t, "groceries", txs[1].Description)
}

func TestRepository_ExternalIDPreserved(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	created, err := repo.Create(&domain.Transaction{
		ID:     "ext-123",
		UserID: 1,
		Date:   "2024-02-01",
		Amount: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "ext-123", created.ID)

	txs, err := repo.GetByUser(1)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "ext-123", txs[0].ID)
}

func TestRepository_GetByUserSince(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	for _, date := range []string{"2024-01-01", "2024-02-01", "2024-03-01"} {
		_, err := repo.Create(&domain.Transaction{UserID: 7, Date: date, Amount: 100})
		require.NoError(t, err)
	}

	txs, err := repo.GetByUserSince(7, "2024-02-01")
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestRepository_UserIsolation(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	_, err := repo.Create(&domain.Transaction{UserID: 1, Date: "2024-01-01", Amount: 100})
	require.NoError(t, err)
	_, err = repo.Create(&domain.Transaction{UserID: 2, Date: "2024-01-01", Amount: 200})
	require.NoError(t, err)

	txs, err := repo.GetByUser(1)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 100.0, txs[0].Amount)

	ids, err := repo.ListUserIDs()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
}
