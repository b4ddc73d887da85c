package service

import (
	"context"
	"fmt"

	"taixiu/models"
)

// StartingBalance is the balance a user is created with on first contact.
const StartingBalance = 1000

type userService struct {
	uowFactory UnitOfWorkFactory
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory) UserService {
	return &userService{uowFactory: uowFactory}
}

// GetOrCreate retrieves an existing user or creates a new one with the
// starting balance. The create path writes an "initial" transaction so the
// audit trail explains where the first coins came from. A storage error is
// returned as-is: we never substitute a default balance for a user we could
// not read.
func (s *userService) GetOrCreate(ctx context.Context, telegramID int64, username, displayName string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if user == nil {
		user, err = uow.UserRepository().Create(ctx, telegramID, username, displayName, StartingBalance)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		initial := &models.Transaction{
			TelegramID:  telegramID,
			Amount:      StartingBalance,
			Kind:        models.TransactionKindInitial,
			Description: "starting balance",
		}
		if err := uow.TransactionRepository().Record(ctx, initial); err != nil {
			return nil, fmt.Errorf("failed to record initial balance: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// GetHistory returns a user's recent game records and transactions
func (s *userService) GetHistory(ctx context.Context, telegramID int64, limit int) ([]*models.GameRecord, []*models.Transaction, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	records, err := uow.GameRecordRepository().GetByUser(ctx, telegramID, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game records: %w", err)
	}

	transactions, err := uow.TransactionRepository().GetByUser(ctx, telegramID, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return records, transactions, nil
}
