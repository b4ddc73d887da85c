package testutil

import (
	"time"

	"taixiu/models"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(telegramID int64, username string) *models.User {
	now := time.Now()
	return &models.User{
		TelegramID:  telegramID,
		Username:    username,
		DisplayName: username,
		Balance:     1000,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CreateTestTransaction creates a test audit entry
func CreateTestTransaction(telegramID int64, amount int64, kind models.TransactionKind) *models.Transaction {
	return &models.Transaction{
		TelegramID:  telegramID,
		Amount:      amount,
		Kind:        kind,
		Description: "test transaction",
		CreatedAt:   time.Now(),
	}
}

// CreateTestGameRecord creates a settled game record for the given dice
func CreateTestGameRecord(telegramID int64, choice models.Choice, stake int64, dice [3]int) *models.GameRecord {
	total := dice[0] + dice[1] + dice[2]
	outcome := models.ChoiceXiu
	if total >= 11 {
		outcome = models.ChoiceTai
	}
	return &models.GameRecord{
		TelegramID: telegramID,
		Choice:     choice,
		BetAmount:  stake,
		Dice:       dice,
		Total:      total,
		Outcome:    outcome,
		Won:        choice == outcome,
		CreatedAt:  time.Now(),
	}
}
