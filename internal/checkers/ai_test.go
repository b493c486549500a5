package checkers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gamehub-backend/internal/game"
)

// promotionBoard gives White two crowning moves from (1,2) and two quiet
// moves from (5,4), generated in that order.
func promotionBoard(t *testing.T) Board {
	t.Helper()

	return parseBoard(t,
		"........",
		"..w.....",
		"........",
		"........",
		"........",
		"....w...",
		"........",
		"b.......",
	)
}

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"easy", "medium", "hard"} {
		d, err := ParseDifficulty(s)
		require.NoError(t, err)
		assert.Equal(t, Difficulty(s), d)
	}

	d, err := ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, Medium, d)

	_, err = ParseDifficulty("insane")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestScore(t *testing.T) {
	rng := game.NewSequence(0.25)

	t.Run("Capture", func(t *testing.T) {
		board := parseBoard(t,
			"........",
			"........",
			"........",
			"........",
			".b......",
			"w.......",
			"........",
			"........",
		)
		moves := GenerateMoves(&board, White)
		require.Len(t, moves, 1)

		assert.InDelta(t, 5.25, Score(&board, moves[0], rng), 1e-9)
	})

	t.Run("Promotion", func(t *testing.T) {
		board := promotionBoard(t)

		score := Score(&board, Move{From: Pos{Row: 1, Col: 2}, To: Pos{Row: 0, Col: 1}}, rng)

		assert.InDelta(t, 3.25, score, 1e-9)
	})

	t.Run("Capture with promotion", func(t *testing.T) {
		board := parseBoard(t,
			"........",
			"......b.",
			".....w..",
			"........",
			"........",
			"........",
			"........",
			"........",
		)
		moves := GenerateMoves(&board, White)
		require.Len(t, moves, 1)

		assert.InDelta(t, 8.25, Score(&board, moves[0], rng), 1e-9)
	})

	t.Run("Quiet move is only jitter", func(t *testing.T) {
		board := promotionBoard(t)

		score := Score(&board, Move{From: Pos{Row: 5, Col: 4}, To: Pos{Row: 4, Col: 3}}, rng)

		assert.InDelta(t, 0.25, score, 1e-9)
	})
}

func TestRank(t *testing.T) {
	// Given: equal jitter for every move
	board := promotionBoard(t)

	// When: ranking White's moves
	ranked := Rank(&board, White, game.NewSequence(0.5))

	// Then: the crowning moves come first in generation order
	require.Len(t, ranked, 4)
	assert.Equal(t, Pos{Row: 0, Col: 1}, ranked[0].Move.To)
	assert.Equal(t, Pos{Row: 0, Col: 3}, ranked[1].Move.To)
	assert.Equal(t, Pos{Row: 4, Col: 3}, ranked[2].Move.To)
	assert.Equal(t, Pos{Row: 4, Col: 5}, ranked[3].Move.To)
	assert.GreaterOrEqual(t, ranked[0].Score, ranked[3].Score)
}

func TestSelector_Select(t *testing.T) {
	t.Run("Hard takes the top move", func(t *testing.T) {
		board := promotionBoard(t)
		selector := NewSelector(Hard, game.NewSequence(0.5))

		move, ok := selector.Select(&board, White)

		require.True(t, ok)
		assert.Equal(t, Pos{Row: 0, Col: 1}, move.To)
	})

	t.Run("Hard prefers the move with better jitter on a tie", func(t *testing.T) {
		board := promotionBoard(t)
		// jitter per move in generation order
		selector := NewSelector(Hard, game.NewSequence(0.1, 0.9, 0.5, 0.5))

		move, _ := selector.Select(&board, White)

		assert.Equal(t, Pos{Row: 0, Col: 3}, move.To)
	})

	t.Run("Medium stays within two points of the best", func(t *testing.T) {
		// Given: four jitters, then the pick
		board := promotionBoard(t)
		selector := NewSelector(Medium, game.NewSequence(0.5, 0.5, 0.5, 0.5, 0.9))

		// When: selecting
		move, ok := selector.Select(&board, White)

		// Then: a crowning move is chosen, never a quiet one
		require.True(t, ok)
		assert.Equal(t, Pos{Row: 0, Col: 3}, move.To)
	})

	t.Run("Medium never picks a quiet move over crowning", func(t *testing.T) {
		board := promotionBoard(t)
		selector := NewSelector(Medium, game.NewRand(99))

		for range 100 {
			move, ok := selector.Select(&board, White)
			require.True(t, ok)
			assert.Equal(t, 0, move.To.Row)
		}
	})

	t.Run("Easy can fall to the bottom half", func(t *testing.T) {
		// Given: a coin below one half, then index zero of the bottom half
		board := promotionBoard(t)
		selector := NewSelector(Easy, game.NewSequence(0.5, 0.5, 0.5, 0.5, 0.1, 0.0))

		move, ok := selector.Select(&board, White)

		// Then: the best of the bottom half is played
		require.True(t, ok)
		assert.Equal(t, Pos{Row: 5, Col: 4}, move.From)
		assert.Equal(t, Pos{Row: 4, Col: 3}, move.To)
	})

	t.Run("Easy otherwise picks across all moves", func(t *testing.T) {
		board := promotionBoard(t)
		selector := NewSelector(Easy, game.NewSequence(0.5, 0.5, 0.5, 0.5, 0.7, 0.0))

		move, ok := selector.Select(&board, White)

		require.True(t, ok)
		assert.Equal(t, Pos{Row: 0, Col: 1}, move.To)
	})

	t.Run("No legal move", func(t *testing.T) {
		board := promotionBoard(t)
		selector := NewSelector(Hard, game.NewSequence(0.5))

		// Black's only man is stuck on its far row
		_, ok := selector.Select(&board, Black)

		assert.False(t, ok)
	})

	t.Run("Selected move is always legal", func(t *testing.T) {
		rng := game.NewRand(3)

		for _, difficulty := range []Difficulty{Easy, Medium, Hard} {
			match := NewMatch(0)
			selector := NewSelector(difficulty, rng)

			for ply := 0; ply < 150 && !match.Outcome().Finished(); ply++ {
				board := match.Board()
				move, ok := selector.Select(&board, match.Turn())
				require.True(t, ok)
				require.True(t, match.Play(move), "%s selected an illegal move", difficulty)
			}
		}
	})
}
