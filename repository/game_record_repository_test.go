package repository

import (
	"context"
	"testing"

	"taixiu/models"
	"taixiu/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRecordRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewGameRecordRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 123456, "testuser", "Test User", 1000)
	require.NoError(t, err)

	t.Run("round trips dice and outcome", func(t *testing.T) {
		record := testutil.CreateTestGameRecord(123456, models.ChoiceTai, 100, [3]int{4, 5, 6})
		record.ID = ""

		err := repo.Create(ctx, record)
		require.NoError(t, err)
		assert.NotEmpty(t, record.ID)

		got, err := repo.GetByUser(ctx, 123456, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)

		assert.Equal(t, record.ID, got[0].ID)
		assert.Equal(t, [3]int{4, 5, 6}, got[0].Dice)
		assert.Equal(t, 15, got[0].Total)
		assert.Equal(t, models.ChoiceTai, got[0].Outcome)
		assert.True(t, got[0].Won)
	})

	t.Run("die outside range rejected", func(t *testing.T) {
		record := testutil.CreateTestGameRecord(123456, models.ChoiceXiu, 100, [3]int{1, 2, 3})
		record.ID = ""
		record.Dice[0] = 7

		err := repo.Create(ctx, record)
		assert.Error(t, err)
	})

	t.Run("unknown user rejected", func(t *testing.T) {
		record := testutil.CreateTestGameRecord(999999, models.ChoiceXiu, 100, [3]int{1, 2, 3})
		record.ID = ""

		err := repo.Create(ctx, record)
		assert.Error(t, err)
	})
}

func TestGameRecordRepository_GetByUser(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewGameRecordRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 123456, "testuser", "Test User", 1000)
	require.NoError(t, err)

	triples := [][3]int{{1, 1, 1}, {2, 3, 4}, {6, 6, 6}}
	for _, dice := range triples {
		record := testutil.CreateTestGameRecord(123456, models.ChoiceTai, 50, dice)
		record.ID = ""
		require.NoError(t, repo.Create(ctx, record))
	}

	got, err := repo.GetByUser(ctx, 123456, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, [3]int{6, 6, 6}, got[0].Dice)

	empty, err := repo.GetByUser(ctx, 555555, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
