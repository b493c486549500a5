package tictactoe

import "github.com/rocketscienceinc/gamehub-backend/internal/game"

const (
	scoreWin  = 1
	scoreDraw = 0
	scoreLoss = -1
)

// Minimax searches the whole game tree and returns the best score for mover
// (+1 win, 0 draw, -1 loss) and the lowest cell index reaching it. The index
// is -1 on a finished board.
func Minimax(board Board, mover Mark) (int, int) {
	return search(board, mover, func(candidate, best int) bool { return candidate > best })
}

// WorstMove runs the same search but picks the cell that minimises mover's
// own outcome. The opponent is still assumed to play perfectly.
func WorstMove(board Board, mover Mark) (int, int) {
	return search(board, mover, func(candidate, best int) bool { return candidate < best })
}

func search(board Board, mover Mark, better func(candidate, best int) bool) (int, int) {
	if outcome := CheckWinner(board); outcome.Finished() {
		return terminalScore(outcome, mover), -1
	}

	bestScore, bestIndex := 0, -1
	for _, cell := range OpenCells(board) {
		score := moveScore(board, cell, mover)
		if bestIndex == -1 || better(score, bestScore) {
			bestScore, bestIndex = score, cell
		}
	}

	return bestScore, bestIndex
}

// moveScore is the value for mover of playing cell, with both sides perfect
// afterwards.
func moveScore(board Board, cell int, mover Mark) int {
	board[cell] = mover

	if outcome := CheckWinner(board); outcome.Finished() {
		return terminalScore(outcome, mover)
	}

	reply, _ := Minimax(board, mover.Opponent())

	return -reply
}

func terminalScore(outcome game.Outcome, mover Mark) int {
	switch {
	case outcome.IsDraw():
		return scoreDraw
	case outcome.Winner == string(mover):
		return scoreWin
	default:
		return scoreLoss
	}
}
