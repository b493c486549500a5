package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gamehub-backend/internal/game"
)

const (
	ModeVsHuman Mode = "vs-human"
	ModeAIvsAI  Mode = "ai-vs-ai"
)

const (
	DefaultSloppinessVsHuman = 0.45
	DefaultSloppinessAIvsAI  = 0.8
)

var ErrUnknownMode = errors.New("unknown mode")

// Mode decides how fallible the opponent is.
type Mode string

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeVsHuman, ModeAIvsAI:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Opponent is a deliberately beatable tic-tac-toe AI. With probability
// Sloppiness it ignores the search and plays a random open cell. With BadGames
// set, odd rounds are thrown by playing the worst move instead of the best.
type Opponent struct {
	Sloppiness float64
	BadGames   bool
	Rand       game.Rand
}

func NewOpponent(mode Mode, rng game.Rand) *Opponent {
	if mode == ModeAIvsAI {
		return &Opponent{Sloppiness: DefaultSloppinessAIvsAI, Rand: rng}
	}

	return &Opponent{Sloppiness: DefaultSloppinessVsHuman, BadGames: true, Rand: rng}
}

// Choose returns false when the board is finished.
func (that *Opponent) Choose(board Board, mark Mark, round int) (int, bool) {
	open := OpenCells(board)
	if len(open) == 0 || CheckWinner(board).Finished() {
		return -1, false
	}

	if that.Rand.Float64() < that.Sloppiness {
		return open[that.Rand.Intn(len(open))], true
	}

	if that.BadGames && round%2 == 1 {
		_, cell := WorstMove(board, mark)
		return cell, true
	}

	_, cell := Minimax(board, mark)

	return cell, true
}
