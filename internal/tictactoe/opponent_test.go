package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gamehub-backend/internal/game"
)

func TestNewOpponent(t *testing.T) {
	rng := game.NewSequence(0.5)

	t.Run("Player mode", func(t *testing.T) {
		opponent := NewOpponent(ModeVsHuman, rng)

		assert.InDelta(t, DefaultSloppinessVsHuman, opponent.Sloppiness, 1e-9)
		assert.True(t, opponent.BadGames)
	})

	t.Run("AI versus AI", func(t *testing.T) {
		opponent := NewOpponent(ModeAIvsAI, rng)

		assert.InDelta(t, DefaultSloppinessAIvsAI, opponent.Sloppiness, 1e-9)
		assert.False(t, opponent.BadGames)
	})
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("ai-vs-ai")
	require.NoError(t, err)
	assert.Equal(t, ModeAIvsAI, mode)

	_, err = ParseMode("coop")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestOpponent_Choose(t *testing.T) {
	// X to move: 2 wins at once, any cell but 2 and 5 loses
	board := Board{X, X, Empty, O, O, Empty, Empty, Empty, Empty}

	t.Run("Sloppy draw picks a random open cell", func(t *testing.T) {
		// Given: a draw below the threshold, then the last open cell
		opponent := &Opponent{Sloppiness: 0.45, Rand: game.NewSequence(0.1, 0.99)}

		// When: choosing
		cell, ok := opponent.Choose(board, X, 0)

		// Then: the search is ignored
		require.True(t, ok)
		assert.Equal(t, 8, cell)
	})

	t.Run("Careful draw plays minimax", func(t *testing.T) {
		opponent := &Opponent{Sloppiness: 0.45, Rand: game.NewSequence(0.9)}

		cell, ok := opponent.Choose(board, X, 0)

		require.True(t, ok)
		assert.Equal(t, 2, cell)
	})

	t.Run("Odd rounds are thrown when bad games are on", func(t *testing.T) {
		opponent := &Opponent{Sloppiness: 0.45, BadGames: true, Rand: game.NewSequence(0.9)}

		cell, ok := opponent.Choose(board, X, 1)

		require.True(t, ok)
		assert.NotEqual(t, 2, cell)
		assert.NotEqual(t, 5, cell)
	})

	t.Run("Even rounds are played properly", func(t *testing.T) {
		opponent := &Opponent{Sloppiness: 0.45, BadGames: true, Rand: game.NewSequence(0.9)}

		cell, ok := opponent.Choose(board, X, 2)

		require.True(t, ok)
		assert.Equal(t, 2, cell)
	})

	t.Run("Finished board", func(t *testing.T) {
		opponent := &Opponent{Rand: game.NewSequence(0.9)}

		_, ok := opponent.Choose(Board{X, X, X, O, O, Empty, Empty, Empty, Empty}, O, 0)

		assert.False(t, ok)
	})

	t.Run("Zero sloppiness never loses a won position", func(t *testing.T) {
		opponent := &Opponent{Rand: game.NewRand(5)}

		for range 20 {
			cell, ok := opponent.Choose(board, X, 0)
			require.True(t, ok)
			assert.Equal(t, 2, cell)
		}
	})

	t.Run("Sloppy opponent stays within the open cells", func(t *testing.T) {
		opponent := &Opponent{Sloppiness: 1, Rand: game.NewRand(5)}
		open := OpenCells(board)

		for range 50 {
			cell, ok := opponent.Choose(board, X, 0)
			require.True(t, ok)
			assert.Contains(t, open, cell)
		}
	})
}
