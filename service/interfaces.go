package service

import (
	"context"

	"taixiu/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByTelegramID retrieves a user; (nil, nil) when absent
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)

	// Create creates a new user with the initial balance
	Create(ctx context.Context, telegramID int64, username, displayName string, initialBalance int64) (*models.User, error)

	// AddBalance adds to a user's balance atomically
	AddBalance(ctx context.Context, telegramID int64, amount int64) error

	// DeductBalance deducts from a user's balance atomically, failing with
	// models.ErrInsufficientBalance if funds are short
	DeductBalance(ctx context.Context, telegramID int64, amount int64) error

	// IncrementStats bumps total_games and the win or loss counter
	IncrementStats(ctx context.Context, telegramID int64, won bool) error
}

// TransactionRepository defines the interface for the append-only audit trail
type TransactionRepository interface {
	// Record appends a transaction entry
	Record(ctx context.Context, transaction *models.Transaction) error

	// GetByUser returns the most recent transactions for a user
	GetByUser(ctx context.Context, telegramID int64, limit int) ([]*models.Transaction, error)
}

// GameRecordRepository defines the interface for settled game records
type GameRecordRepository interface {
	// Create appends a settled game record
	Create(ctx context.Context, record *models.GameRecord) error

	// GetByUser returns the most recent game records for a user
	GetByUser(ctx context.Context, telegramID int64, limit int) ([]*models.GameRecord, error)
}

// UserService defines the interface for user operations
type UserService interface {
	// GetOrCreate retrieves an existing user or creates one with the
	// starting balance. Creation is not an error path.
	GetOrCreate(ctx context.Context, telegramID int64, username, displayName string) (*models.User, error)

	// GetHistory returns a user's recent game records and transactions
	GetHistory(ctx context.Context, telegramID int64, limit int) ([]*models.GameRecord, []*models.Transaction, error)
}

// GameService defines the interface for wager settlement
type GameService interface {
	// Play settles one wager: debit or credit the stake by the resolution
	// of the supplied dice, append the game record and audit entry, and
	// bump stats, all in one atomic unit per user.
	Play(ctx context.Context, telegramID int64, choice models.Choice, stake int64, dice [3]int) (*models.GameResult, error)
}

// RechargeService defines the interface for privileged balance credits
type RechargeService interface {
	// TargetExists reports whether a recharge target user exists
	TargetExists(ctx context.Context, telegramID int64) (bool, error)

	// Recharge credits an existing user and records a recharge transaction
	Recharge(ctx context.Context, targetID int64, amount int64) (newBalance int64, err error)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	TransactionRepository() TransactionRepository
	GameRecordRepository() GameRecordRepository
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
