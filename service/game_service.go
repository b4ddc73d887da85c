package service

import (
	"context"
	"fmt"

	"taixiu/game"
	"taixiu/models"
)

type gameService struct {
	uowFactory UnitOfWorkFactory
	locks      *userLocks
}

// NewGameService creates a new game service
func NewGameService(uowFactory UnitOfWorkFactory) GameService {
	return &gameService{
		uowFactory: uowFactory,
		locks:      newUserLocks(),
	}
}

// Play settles one wager. The whole settlement for a user runs under that
// user's lock and inside one database transaction: balance check, debit or
// credit, game record, audit entry, and stats either all land or none do.
// Once entered, settlement runs to completion; a duplicated confirm from the
// same user waits on the lock and then fails its own funds check honestly.
func (s *gameService) Play(ctx context.Context, telegramID int64, choice models.Choice, stake int64, dice [3]int) (*models.GameResult, error) {
	if stake <= 0 {
		return nil, fmt.Errorf("stake must be positive")
	}

	resolution, err := game.Resolve(choice, dice)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(telegramID)
	lock.Lock()
	defer lock.Unlock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// Fail closed: if the balance cannot be confirmed the wager is rejected,
	// never played against an assumed balance.
	user, err := uow.UserRepository().GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("play for user %d: %w", telegramID, models.ErrUserNotFound)
	}
	if user.Balance < stake {
		return nil, fmt.Errorf("have %d, need %d: %w", user.Balance, stake, models.ErrInsufficientBalance)
	}

	var newBalance, delta int64
	var kind models.TransactionKind

	if resolution.Won {
		newBalance = user.Balance + stake
		delta = stake
		kind = models.TransactionKindWin
		if err := uow.UserRepository().AddBalance(ctx, telegramID, stake); err != nil {
			return nil, fmt.Errorf("failed to credit winnings: %w", err)
		}
	} else {
		newBalance = user.Balance - stake
		delta = -stake
		kind = models.TransactionKindLoss
		if err := uow.UserRepository().DeductBalance(ctx, telegramID, stake); err != nil {
			return nil, fmt.Errorf("failed to deduct stake: %w", err)
		}
	}

	record := &models.GameRecord{
		TelegramID: telegramID,
		Choice:     choice,
		BetAmount:  stake,
		Dice:       dice,
		Total:      resolution.Total,
		Outcome:    resolution.Outcome,
		Won:        resolution.Won,
	}
	if err := uow.GameRecordRepository().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create game record: %w", err)
	}

	transaction := &models.Transaction{
		TelegramID:  telegramID,
		Amount:      delta,
		Kind:        kind,
		Description: fmt.Sprintf("bet %d on %s, rolled %d-%d-%d (%d)", stake, choice, dice[0], dice[1], dice[2], resolution.Total),
	}
	if err := uow.TransactionRepository().Record(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	if err := uow.UserRepository().IncrementStats(ctx, telegramID, resolution.Won); err != nil {
		return nil, fmt.Errorf("failed to increment stats: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.GameResult{
		Choice:     choice,
		BetAmount:  stake,
		Dice:       dice,
		Total:      resolution.Total,
		Outcome:    resolution.Outcome,
		Won:        resolution.Won,
		NewBalance: newBalance,
	}, nil
}
