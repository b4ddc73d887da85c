package models

import "time"

// Choice is a side of the three-die threshold game. The same values
// describe the outcome of a roll: tài for totals 11-18, xỉu for 3-10.
type Choice string

const (
	ChoiceTai Choice = "tai"
	ChoiceXiu Choice = "xiu"
)

// Valid reports whether c is one of the two playable sides.
func (c Choice) Valid() bool {
	return c == ChoiceTai || c == ChoiceXiu
}

// Label returns the user-facing name for the side.
func (c Choice) Label() string {
	if c == ChoiceTai {
		return "Tài"
	}
	return "Xỉu"
}

// GameRecord represents one settled game in the database
type GameRecord struct {
	ID         string    `db:"id"`
	TelegramID int64     `db:"telegram_id"`
	Choice     Choice    `db:"choice"`
	BetAmount  int64     `db:"bet_amount"`
	Dice       [3]int    `db:"-"`
	Total      int       `db:"total"`
	Outcome    Choice    `db:"outcome"`
	Won        bool      `db:"won"`
	CreatedAt  time.Time `db:"created_at"`
}

// GameResult represents the outcome of a wager (returned to the user)
type GameResult struct {
	Choice     Choice
	BetAmount  int64
	Dice       [3]int
	Total      int
	Outcome    Choice
	Won        bool
	NewBalance int64
}
