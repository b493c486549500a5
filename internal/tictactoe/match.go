package tictactoe

import "github.com/rocketscienceinc/gamehub-backend/internal/game"

// Match is a series of rounds on one board. X opens every round.
type Match struct {
	board Board
	turn  Mark
	round int
	moves int
}

func NewMatch() *Match {
	return &Match{turn: X}
}

func (that *Match) Board() Board {
	return that.board
}

func (that *Match) Turn() Mark {
	return that.turn
}

func (that *Match) SideToMove() string {
	return string(that.turn)
}

// Round counts resets, starting at 0.
func (that *Match) Round() int {
	return that.round
}

func (that *Match) Moves() int {
	return that.moves
}

func (that *Match) OpenCells() []int {
	return OpenCells(that.board)
}

func (that *Match) Outcome() game.Outcome {
	return CheckWinner(that.board)
}

// Play marks cell for the side to move. Out-of-range, occupied or post-game
// cells are ignored.
func (that *Match) Play(cell int) bool {
	if cell < 0 || cell >= Cells || that.board[cell] != Empty || that.Outcome().Finished() {
		return false
	}

	that.board[cell] = that.turn
	that.turn = that.turn.Opponent()
	that.moves++

	return true
}

// Reset clears the board and starts the next round.
func (that *Match) Reset() {
	that.board = Board{}
	that.turn = X
	that.moves = 0
	that.round++
}
