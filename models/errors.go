package models

import "errors"

// Sentinel errors shared by the ledger layers. Callers distinguish them with
// errors.Is to decide between re-prompting and failing the interaction.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
