package repository

import (
	"context"
	"testing"

	"taixiu/models"
	"taixiu/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository_Record(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewTransactionRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 123456, "testuser", "Test User", 1000)
	require.NoError(t, err)

	t.Run("assigns id and created_at", func(t *testing.T) {
		tx := testutil.CreateTestTransaction(123456, -100, models.TransactionKindLoss)
		tx.ID = ""
		tx.CreatedAt = tx.CreatedAt.Truncate(0)

		err := repo.Record(ctx, tx)
		require.NoError(t, err)

		assert.NotEmpty(t, tx.ID)
		assert.False(t, tx.CreatedAt.IsZero())
	})

	t.Run("unknown user rejected", func(t *testing.T) {
		tx := testutil.CreateTestTransaction(999999, 100, models.TransactionKindWin)
		tx.ID = ""

		err := repo.Record(ctx, tx)
		assert.Error(t, err)
	})
}

func TestTransactionRepository_GetByUser(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewTransactionRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 123456, "testuser", "Test User", 1000)
	require.NoError(t, err)
	_, err = users.Create(ctx, 789012, "otheruser", "Other User", 1000)
	require.NoError(t, err)

	entries := []struct {
		amount int64
		kind   models.TransactionKind
	}{
		{1000, models.TransactionKindInitial},
		{-100, models.TransactionKindLoss},
		{200, models.TransactionKindWin},
		{5000, models.TransactionKindRecharge},
	}
	for _, e := range entries {
		tx := testutil.CreateTestTransaction(123456, e.amount, e.kind)
		tx.ID = ""
		require.NoError(t, repo.Record(ctx, tx))
	}

	other := testutil.CreateTestTransaction(789012, 1000, models.TransactionKindInitial)
	other.ID = ""
	require.NoError(t, repo.Record(ctx, other))

	t.Run("newest first, limit honored", func(t *testing.T) {
		got, err := repo.GetByUser(ctx, 123456, 3)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, models.TransactionKindRecharge, got[0].Kind)
		for _, tx := range got {
			assert.Equal(t, int64(123456), tx.TelegramID)
		}
	})

	t.Run("scoped to one user", func(t *testing.T) {
		got, err := repo.GetByUser(ctx, 789012, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, models.TransactionKindInitial, got[0].Kind)
	})

	t.Run("no entries", func(t *testing.T) {
		got, err := repo.GetByUser(ctx, 555555, 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
