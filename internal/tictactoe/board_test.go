package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gamehub-backend/internal/game"
)

func TestCheckWinner(t *testing.T) {
	t.Run("Winner X", func(t *testing.T) {
		// Given: a board where X holds the left column
		board := Board{X, O, Empty, X, O, Empty, X, Empty, Empty}

		// When: checking the board
		outcome := CheckWinner(board)

		// Then: X should be declared the winner
		require.Equal(t, game.Win("X"), outcome)
	})

	t.Run("Ongoing Game", func(t *testing.T) {
		// Given: a board with no line and open cells
		board := Board{X, O, X, Empty, O, Empty, X, Empty, Empty}

		// Then: the game should continue
		require.Equal(t, game.Ongoing(), CheckWinner(board))
	})

	t.Run("Tie", func(t *testing.T) {
		// Given: a full board without a line
		board := Board{O, X, O, O, X, X, X, O, X}

		// Then: the game should be declared a draw
		assert.Equal(t, game.Draw(), CheckWinner(board))
	})

	t.Run("Every line wins for both marks", func(t *testing.T) {
		for _, combo := range WinCombos {
			for _, mark := range []Mark{X, O} {
				var board Board
				for _, cell := range combo {
					board[cell] = mark
				}

				assert.Equal(t, game.Win(string(mark)), CheckWinner(board), "line %v", combo)
			}
		}
	})

	t.Run("Exhaustive over all boards", func(t *testing.T) {
		// Given: every assignment of X, O and empty to the nine cells
		marks := []Mark{Empty, X, O}

		for code := range 19683 {
			var board Board
			n := code
			for i := range Cells {
				board[i] = marks[n%3]
				n /= 3
			}

			xLine, oLine := hasLine(board, X), hasLine(board, O)
			if xLine && oLine {
				// unreachable in play
				continue
			}

			outcome := CheckWinner(board)

			// Then: a line is reported for its mark, a full board without one is a draw
			switch {
			case xLine:
				require.Equal(t, game.Win("X"), outcome)
			case oLine:
				require.Equal(t, game.Win("O"), outcome)
			case len(OpenCells(board)) == 0:
				require.Equal(t, game.Draw(), outcome)
			default:
				require.Equal(t, game.Ongoing(), outcome)
			}
		}
	})
}

func hasLine(board Board, mark Mark) bool {
	rows := [][3]int{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}}
	cols := [][3]int{{0, 3, 6}, {1, 4, 7}, {2, 5, 8}}
	diags := [][3]int{{0, 4, 8}, {2, 4, 6}}

	for _, group := range [][][3]int{rows, cols, diags} {
		for _, line := range group {
			if board[line[0]] == mark && board[line[1]] == mark && board[line[2]] == mark {
				return true
			}
		}
	}

	return false
}

func TestOpenCells(t *testing.T) {
	board := Board{X, Empty, O, Empty, Empty, X, O, Empty, X}

	assert.Equal(t, []int{1, 3, 4, 7}, OpenCells(board))
	assert.Len(t, OpenCells(Board{}), Cells)
	assert.Empty(t, OpenCells(Board{X, O, X, O, X, O, O, X, O}))
}

func TestMark(t *testing.T) {
	assert.Equal(t, O, X.Opponent())
	assert.Equal(t, X, O.Opponent())
	assert.True(t, X.Valid())
	assert.False(t, Empty.Valid())
}
