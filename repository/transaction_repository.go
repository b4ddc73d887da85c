package repository

import (
	"context"
	"fmt"

	"taixiu/database"
	"taixiu/models"
)

// TransactionRepository provides append-only access to the audit trail
type TransactionRepository struct {
	q queryable
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

// newTransactionRepositoryWithTx creates a transaction repository bound to a transaction
func newTransactionRepositoryWithTx(tx queryable) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Record appends a transaction. Entries are never updated or deleted; the
// authoritative balance lives on the user row, this table is the audit trail.
func (r *TransactionRepository) Record(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = newID()
	}

	query := `
		INSERT INTO transactions (id, telegram_id, amount, kind, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		transaction.ID,
		transaction.TelegramID,
		transaction.Amount,
		transaction.Kind,
		transaction.Description,
	).Scan(&transaction.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record transaction for user %d: %w", transaction.TelegramID, err)
	}

	return nil
}

// GetByUser returns the most recent transactions for a user
func (r *TransactionRepository) GetByUser(ctx context.Context, telegramID int64, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT id, telegram_id, amount, kind, description, created_at
		FROM transactions
		WHERE telegram_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, telegramID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for user %d: %w", telegramID, err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var transaction models.Transaction
		err := rows.Scan(
			&transaction.ID,
			&transaction.TelegramID,
			&transaction.Amount,
			&transaction.Kind,
			&transaction.Description,
			&transaction.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}
