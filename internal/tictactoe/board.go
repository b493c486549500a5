package tictactoe

import "github.com/rocketscienceinc/gamehub-backend/internal/game"

const (
	X     Mark = "X"
	O     Mark = "O"
	Empty Mark = ""

	Cells = 9
)

// WinCombos lists every row, column and diagonal.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Mark string

func (that Mark) Opponent() Mark {
	if that == X {
		return O
	}
	return X
}

func (that Mark) Valid() bool {
	return that == X || that == O
}

// Board is stored row-major.
type Board [Cells]Mark

// OpenCells lists the empty cells in index order.
func OpenCells(board Board) []int {
	cells := make([]int, 0, Cells)

	for i, cell := range board {
		if cell == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

// Winner returns the mark holding a full line, or Empty.
func Winner(board Board) Mark {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != Empty && a == b && b == c {
			return a
		}
	}

	return Empty
}

// CheckWinner classifies the board: a line wins, a full board without one is
// a draw.
func CheckWinner(board Board) game.Outcome {
	if winner := Winner(board); winner != Empty {
		return game.Win(string(winner))
	}

	// the game will continue until all the squares are full
	for _, cell := range board {
		if cell == Empty {
			return game.Ongoing()
		}
	}

	return game.Draw()
}
