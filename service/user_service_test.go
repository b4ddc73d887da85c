package service

import (
	"context"
	"testing"

	"taixiu/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetOrCreate_NewUser(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockTransactionRepo := new(MockTransactionRepository)

	mockUoW.SetRepositories(mockUserRepo, mockTransactionRepo, new(MockGameRecordRepository))
	mockFactory.On("Create").Return(mockUoW)

	svc := NewUserService(mockFactory)

	created := &models.User{TelegramID: 123456, Username: "newplayer", Balance: StartingBalance}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByTelegramID", ctx, int64(123456)).Return(nil, nil)
	mockUserRepo.On("Create", ctx, int64(123456), "newplayer", "New Player", int64(StartingBalance)).Return(created, nil)

	mockTransactionRepo.On("Record", ctx, mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.TelegramID == 123456 &&
			tx.Amount == StartingBalance &&
			tx.Kind == models.TransactionKindInitial
	})).Return(nil)

	user, err := svc.GetOrCreate(ctx, 123456, "newplayer", "New Player")

	require.NoError(t, err)
	assert.Equal(t, int64(StartingBalance), user.Balance)

	mockUserRepo.AssertExpectations(t)
	mockTransactionRepo.AssertExpectations(t)
}

func TestUserService_GetOrCreate_ExistingUser(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockTransactionRepo := new(MockTransactionRepository)

	mockUoW.SetRepositories(mockUserRepo, mockTransactionRepo, new(MockGameRecordRepository))
	mockFactory.On("Create").Return(mockUoW)

	svc := NewUserService(mockFactory)

	existing := &models.User{TelegramID: 123456, Username: "regular", Balance: 740}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUserRepo.On("GetByTelegramID", ctx, int64(123456)).Return(existing, nil)

	// Repeated queries are idempotent: no second create, balance untouched
	for i := 0; i < 3; i++ {
		user, err := svc.GetOrCreate(ctx, 123456, "regular", "Regular")
		require.NoError(t, err)
		assert.Equal(t, int64(740), user.Balance)
	}

	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockTransactionRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}
