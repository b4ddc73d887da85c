package models

import (
	"time"
)

// User represents a Telegram user with a coin balance
type User struct {
	TelegramID  int64     `db:"telegram_id"`
	Username    string    `db:"username"`
	DisplayName string    `db:"display_name"`
	Balance     int64     `db:"balance"`
	TotalGames  int64     `db:"total_games"`
	Wins        int64     `db:"wins"`
	Losses      int64     `db:"losses"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
