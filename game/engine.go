// Package game implements the tài/xỉu resolution rules. Everything here is
// pure: dice come in, an outcome comes out. Rolling and presentation pacing
// are the caller's concern.
package game

import (
	"fmt"
	"math/rand"

	"taixiu/models"
)

// DiceSides is the number of faces on each die.
const DiceSides = 6

// Result holds the resolution of one dice triple against a player's choice.
type Result struct {
	Total   int
	Outcome models.Choice
	Won     bool
}

// Outcome maps a dice total to its side: tài for 11-18, xỉu for 3-10.
// Every total a triple of dice can produce maps to exactly one side;
// there is no push.
func Outcome(total int) models.Choice {
	if total >= 11 {
		return models.ChoiceTai
	}
	return models.ChoiceXiu
}

// Resolve scores a choice against a rolled triple. It returns an error if
// the choice or any die value is out of range; it never touches I/O.
func Resolve(choice models.Choice, dice [3]int) (Result, error) {
	if !choice.Valid() {
		return Result{}, fmt.Errorf("invalid choice %q", choice)
	}
	total := 0
	for _, d := range dice {
		if d < 1 || d > DiceSides {
			return Result{}, fmt.Errorf("die value %d out of range", d)
		}
		total += d
	}
	outcome := Outcome(total)
	return Result{
		Total:   total,
		Outcome: outcome,
		Won:     choice == outcome,
	}, nil
}

// Roll draws three independent uniform dice from rng.
func Roll(rng *rand.Rand) [3]int {
	var dice [3]int
	for i := range dice {
		dice[i] = rng.Intn(DiceSides) + 1
	}
	return dice
}
