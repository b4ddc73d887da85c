package repository

import (
	"context"
	"fmt"

	"taixiu/database"
	"taixiu/models"

	"github.com/jackc/pgx/v5"
)

// UserRepository provides access to user records and their balances
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository bound to a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// GetByTelegramID retrieves a user by their Telegram ID. A missing user is
// returned as (nil, nil), not an error.
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	query := `
		SELECT telegram_id, username, display_name, balance, total_games, wins, losses, created_at, updated_at
		FROM users
		WHERE telegram_id = $1
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, telegramID).Scan(
		&user.TelegramID,
		&user.Username,
		&user.DisplayName,
		&user.Balance,
		&user.TotalGames,
		&user.Wins,
		&user.Losses,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", telegramID, err)
	}

	return &user, nil
}

// Create creates a new user with the initial balance
func (r *UserRepository) Create(ctx context.Context, telegramID int64, username, displayName string, initialBalance int64) (*models.User, error) {
	query := `
		INSERT INTO users (telegram_id, username, display_name, balance)
		VALUES ($1, $2, $3, $4)
		RETURNING telegram_id, username, display_name, balance, total_games, wins, losses, created_at, updated_at
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, telegramID, username, displayName, initialBalance).Scan(
		&user.TelegramID,
		&user.Username,
		&user.DisplayName,
		&user.Balance,
		&user.TotalGames,
		&user.Wins,
		&user.Losses,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user %d: %w", telegramID, err)
	}

	return &user, nil
}

// AddBalance adds to a user's balance atomically
func (r *UserRepository) AddBalance(ctx context.Context, telegramID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE telegram_id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, telegramID)
	if err != nil {
		return fmt.Errorf("failed to add balance for user %d: %w", telegramID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("add balance for user %d: %w", telegramID, models.ErrUserNotFound)
	}

	return nil
}

// DeductBalance deducts from a user's balance. The funds check and the
// mutation are a single guarded UPDATE, so the balance can never be driven
// negative by concurrent wagers.
func (r *UserRepository) DeductBalance(ctx context.Context, telegramID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance - $1, updated_at = NOW()
		WHERE telegram_id = $2 AND balance >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, telegramID)
	if err != nil {
		return fmt.Errorf("failed to deduct balance for user %d: %w", telegramID, err)
	}

	if result.RowsAffected() == 0 {
		// Zero rows means either no such user or not enough funds
		user, err := r.GetByTelegramID(ctx, telegramID)
		if err != nil {
			return fmt.Errorf("failed to check user %d: %w", telegramID, err)
		}
		if user == nil {
			return fmt.Errorf("deduct balance for user %d: %w", telegramID, models.ErrUserNotFound)
		}
		return fmt.Errorf("have %d, need %d: %w", user.Balance, amount, models.ErrInsufficientBalance)
	}

	return nil
}

// IncrementStats bumps total_games and the win or loss counter in one UPDATE.
func (r *UserRepository) IncrementStats(ctx context.Context, telegramID int64, won bool) error {
	query := `
		UPDATE users
		SET total_games = total_games + 1,
		    wins = wins + CASE WHEN $1 THEN 1 ELSE 0 END,
		    losses = losses + CASE WHEN $1 THEN 0 ELSE 1 END,
		    updated_at = NOW()
		WHERE telegram_id = $2
	`

	result, err := r.q.Exec(ctx, query, won, telegramID)
	if err != nil {
		return fmt.Errorf("failed to increment stats for user %d: %w", telegramID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("increment stats for user %d: %w", telegramID, models.ErrUserNotFound)
	}

	return nil
}
