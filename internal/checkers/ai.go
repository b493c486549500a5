package checkers

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rocketscienceinc/gamehub-backend/internal/game"
)

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

const (
	captureBonus   = 5
	promotionBonus = 3

	// medium picks among moves this close to the best score
	mediumWindow = 2
	// easy falls back to the bottom half of the ranking this often
	easyBottomChance = 0.5
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

type Difficulty string

// ParseDifficulty defaults to Medium for an empty string.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case Easy, Medium, Hard:
		return d, nil
	case "":
		return Medium, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}

type ScoredMove struct {
	Move  Move
	Score float64
}

// Score rates a move for the side making it. The jitter keeps equal moves from
// always resolving the same way.
func Score(board *Board, move Move, rng game.Rand) float64 {
	score := 0.0

	if move.Capture {
		score += captureBonus
	}

	if Promotes(board, move) {
		score += promotionBonus
	}

	return score + rng.Float64()
}

// Rank scores every legal move of side, best first.
func Rank(board *Board, side Color, rng game.Rand) []ScoredMove {
	moves := GenerateMoves(board, side)

	ranked := make([]ScoredMove, 0, len(moves))
	for _, move := range moves {
		ranked = append(ranked, ScoredMove{Move: move, Score: Score(board, move, rng)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// Selector picks the AI move (and the hint) for a difficulty level.
type Selector struct {
	Difficulty Difficulty
	Rand       game.Rand
}

func NewSelector(difficulty Difficulty, rng game.Rand) *Selector {
	return &Selector{Difficulty: difficulty, Rand: rng}
}

// Select returns false when side has no legal move.
func (that *Selector) Select(board *Board, side Color) (Move, bool) {
	ranked := Rank(board, side, that.Rand)
	if len(ranked) == 0 {
		return Move{}, false
	}

	switch that.Difficulty {
	case Hard:
		return ranked[0].Move, true
	case Easy:
		if that.Rand.Float64() < easyBottomChance {
			bottom := ranked[len(ranked)/2:]
			return bottom[that.Rand.Intn(len(bottom))].Move, true
		}

		return ranked[that.Rand.Intn(len(ranked))].Move, true
	default:
		best := ranked[0].Score

		n := 0
		for n < len(ranked) && ranked[n].Score >= best-mediumWindow {
			n++
		}

		return ranked[that.Rand.Intn(n)].Move, true
	}
}
