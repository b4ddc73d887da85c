package repository

import (
	"context"
	"fmt"

	"taixiu/database"
	"taixiu/models"
)

// GameRecordRepository provides append-only access to settled games
type GameRecordRepository struct {
	q queryable
}

// NewGameRecordRepository creates a new game record repository
func NewGameRecordRepository(db *database.DB) *GameRecordRepository {
	return &GameRecordRepository{q: db.Pool}
}

// newGameRecordRepositoryWithTx creates a game record repository bound to a transaction
func newGameRecordRepositoryWithTx(tx queryable) *GameRecordRepository {
	return &GameRecordRepository{q: tx}
}

// Create appends a settled game record
func (r *GameRecordRepository) Create(ctx context.Context, record *models.GameRecord) error {
	if record.ID == "" {
		record.ID = newID()
	}

	query := `
		INSERT INTO game_records (id, telegram_id, choice, bet_amount, dice1, dice2, dice3, total, outcome, won)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		record.ID,
		record.TelegramID,
		record.Choice,
		record.BetAmount,
		record.Dice[0],
		record.Dice[1],
		record.Dice[2],
		record.Total,
		record.Outcome,
		record.Won,
	).Scan(&record.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create game record for user %d: %w", record.TelegramID, err)
	}

	return nil
}

// GetByUser returns the most recent game records for a user
func (r *GameRecordRepository) GetByUser(ctx context.Context, telegramID int64, limit int) ([]*models.GameRecord, error) {
	query := `
		SELECT id, telegram_id, choice, bet_amount, dice1, dice2, dice3, total, outcome, won, created_at
		FROM game_records
		WHERE telegram_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, telegramID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get game records for user %d: %w", telegramID, err)
	}
	defer rows.Close()

	var records []*models.GameRecord
	for rows.Next() {
		var record models.GameRecord
		err := rows.Scan(
			&record.ID,
			&record.TelegramID,
			&record.Choice,
			&record.BetAmount,
			&record.Dice[0],
			&record.Dice[1],
			&record.Dice[2],
			&record.Total,
			&record.Outcome,
			&record.Won,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game record: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game records: %w", err)
	}

	return records, nil
}
