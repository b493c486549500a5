package entity

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
)

const (
	KindCheckers  = "checkers"
	KindTicTacToe = "tictactoe"

	ModeHotseat = "hotseat"
	ModeVsAI    = "vs-ai"
	ModeAIvsAI  = "ai-vs-ai"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	// Tie is the winner of a drawn game.
	Tie = "-"

	EmptyCell = ""
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Move is a checkers move (From, To) or a tic-tac-toe move (Cell).
type Move struct {
	From    *Square `json:"from,omitempty"`
	To      *Square `json:"to,omitempty"`
	Cell    *int    `json:"cell,omitempty"`
	Capture bool    `json:"capture,omitempty"`
}

// Session is the client and storage view of one match.
type Session struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	Mode       string     `json:"mode"`
	Difficulty string     `json:"difficulty,omitempty"`
	HumanSides []string   `json:"human_sides"`
	State      string     `json:"state"`
	Status     string     `json:"status"`
	Winner     string     `json:"winner,omitempty"`
	Turn       string     `json:"turn,omitempty"`
	Round      int        `json:"round"`
	Plies      int        `json:"plies"`
	Board      [][]string `json:"board"`
	LegalMoves []Move     `json:"legal_moves,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func NewSession(id, kind, mode string) *Session {
	return &Session{
		ID:     id,
		Kind:   kind,
		Mode:   mode,
		Status: StatusOngoing,
	}
}

func ValidKind(kind string) bool {
	return kind == KindCheckers || kind == KindTicTacToe
}

func ValidMode(mode string) bool {
	return mode == ModeHotseat || mode == ModeVsAI || mode == ModeAIvsAI
}

func (that *Session) IsHuman(side string) bool {
	return slices.Contains(that.HumanSides, side)
}

func (that *Session) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Session) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Session) IsTie() bool {
	return that.IsFinished() && that.Winner == Tie
}

func (that *Session) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
