package game

import (
	"math/rand"
	"testing"

	"taixiu/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		choice      models.Choice
		dice        [3]int
		wantTotal   int
		wantOutcome models.Choice
		wantWon     bool
	}{
		{
			name:        "tai choice wins on high roll",
			choice:      models.ChoiceTai,
			dice:        [3]int{4, 5, 6},
			wantTotal:   15,
			wantOutcome: models.ChoiceTai,
			wantWon:     true,
		},
		{
			name:        "tai choice loses on low roll",
			choice:      models.ChoiceTai,
			dice:        [3]int{3, 3, 3},
			wantTotal:   9,
			wantOutcome: models.ChoiceXiu,
			wantWon:     false,
		},
		{
			name:        "xiu choice wins on low roll",
			choice:      models.ChoiceXiu,
			dice:        [3]int{1, 1, 1},
			wantTotal:   3,
			wantOutcome: models.ChoiceXiu,
			wantWon:     true,
		},
		{
			name:        "boundary total 10 is xiu",
			choice:      models.ChoiceTai,
			dice:        [3]int{2, 3, 5},
			wantTotal:   10,
			wantOutcome: models.ChoiceXiu,
			wantWon:     false,
		},
		{
			name:        "boundary total 11 is tai",
			choice:      models.ChoiceTai,
			dice:        [3]int{2, 3, 6},
			wantTotal:   11,
			wantOutcome: models.ChoiceTai,
			wantWon:     true,
		},
		{
			name:        "max total 18 is tai",
			choice:      models.ChoiceXiu,
			dice:        [3]int{6, 6, 6},
			wantTotal:   18,
			wantOutcome: models.ChoiceTai,
			wantWon:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Resolve(tt.choice, tt.dice)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantOutcome, result.Outcome)
			assert.Equal(t, tt.wantWon, result.Won)
		})
	}
}

func TestResolve_InvalidInputs(t *testing.T) {
	_, err := Resolve(models.Choice("draw"), [3]int{1, 2, 3})
	assert.Error(t, err)

	_, err = Resolve(models.ChoiceTai, [3]int{0, 2, 3})
	assert.Error(t, err)

	_, err = Resolve(models.ChoiceTai, [3]int{1, 2, 7})
	assert.Error(t, err)
}

// Every possible triple must produce a total in [3,18] and resolve to
// exactly one of the two sides.
func TestResolve_AllTriplesCovered(t *testing.T) {
	for d1 := 1; d1 <= 6; d1++ {
		for d2 := 1; d2 <= 6; d2++ {
			for d3 := 1; d3 <= 6; d3++ {
				result, err := Resolve(models.ChoiceTai, [3]int{d1, d2, d3})
				require.NoError(t, err)

				assert.Equal(t, d1+d2+d3, result.Total)
				assert.GreaterOrEqual(t, result.Total, 3)
				assert.LessOrEqual(t, result.Total, 18)
				assert.True(t, result.Outcome.Valid())

				if result.Total >= 11 {
					assert.Equal(t, models.ChoiceTai, result.Outcome)
				} else {
					assert.Equal(t, models.ChoiceXiu, result.Outcome)
				}
			}
		}
	}
}

func TestOutcome_TotalFunctionOverRange(t *testing.T) {
	for total := 3; total <= 18; total++ {
		outcome := Outcome(total)
		require.True(t, outcome.Valid(), "total %d has no outcome", total)
		if total <= 10 {
			assert.Equal(t, models.ChoiceXiu, outcome)
		} else {
			assert.Equal(t, models.ChoiceTai, outcome)
		}
	}
}

func TestRoll_ValuesInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		dice := Roll(rng)
		for _, d := range dice {
			assert.GreaterOrEqual(t, d, 1)
			assert.LessOrEqual(t, d, 6)
		}
	}
}
