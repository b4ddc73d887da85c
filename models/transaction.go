package models

import (
	"time"
)

// TransactionKind represents the type of balance change
type TransactionKind string

const (
	TransactionKindInitial  TransactionKind = "initial"
	TransactionKindWin      TransactionKind = "win"
	TransactionKindLoss     TransactionKind = "loss"
	TransactionKindRecharge TransactionKind = "recharge"
)

// Transaction represents an append-only audit entry for a balance change.
// Amount is signed: positive for credits, negative for debits.
type Transaction struct {
	ID          string          `db:"id"`
	TelegramID  int64           `db:"telegram_id"`
	Amount      int64           `db:"amount"`
	Kind        TransactionKind `db:"kind"`
	Description string          `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
}
