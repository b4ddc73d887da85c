package service

import (
	"context"
	"fmt"

	"taixiu/models"
)

type rechargeService struct {
	uowFactory UnitOfWorkFactory
}

// NewRechargeService creates a new recharge service
func NewRechargeService(uowFactory UnitOfWorkFactory) RechargeService {
	return &rechargeService{uowFactory: uowFactory}
}

// TargetExists reports whether a recharge target user exists. Recharge never
// lazily creates its target; crediting an id nobody has played from is
// almost certainly a typo.
func (s *rechargeService) TargetExists(ctx context.Context, telegramID int64) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByTelegramID(ctx, telegramID)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user != nil, nil
}

// Recharge credits an existing user and appends a recharge transaction. The
// credit goes through the same atomic AddBalance as normal play, so a target
// who is mid-wager cannot lose the update.
func (s *rechargeService) Recharge(ctx context.Context, targetID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("recharge amount must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByTelegramID(ctx, targetID)
	if err != nil {
		return 0, fmt.Errorf("failed to get target user: %w", err)
	}
	if user == nil {
		return 0, fmt.Errorf("recharge target %d: %w", targetID, models.ErrUserNotFound)
	}

	if err := uow.UserRepository().AddBalance(ctx, targetID, amount); err != nil {
		return 0, fmt.Errorf("failed to credit target: %w", err)
	}

	transaction := &models.Transaction{
		TelegramID:  targetID,
		Amount:      amount,
		Kind:        models.TransactionKindRecharge,
		Description: fmt.Sprintf("admin recharge of %d", amount),
	}
	if err := uow.TransactionRepository().Record(ctx, transaction); err != nil {
		return 0, fmt.Errorf("failed to record recharge: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user.Balance + amount, nil
}
