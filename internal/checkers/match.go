package checkers

import "github.com/rocketscienceinc/gamehub-backend/internal/game"

type snapshot struct {
	board Board
	turn  Color
}

// Match is one game of checkers with an undo history of the positions before
// each accepted ply.
type Match struct {
	board Board
	turn  Color
	plies int

	history      []snapshot
	historyLimit int
}

// NewMatch starts from the opening position with White to move. A
// historyLimit of 0 keeps every position.
func NewMatch(historyLimit int) *Match {
	return FromPosition(NewBoard(), White, historyLimit)
}

func FromPosition(board Board, turn Color, historyLimit int) *Match {
	return &Match{
		board:        board.Clone(),
		turn:         turn,
		historyLimit: historyLimit,
	}
}

func (that *Match) Board() Board {
	return that.board.Clone()
}

func (that *Match) Turn() Color {
	return that.turn
}

func (that *Match) SideToMove() string {
	return string(that.turn)
}

func (that *Match) Plies() int {
	return that.plies
}

func (that *Match) HistoryLen() int {
	return len(that.history)
}

func (that *Match) LegalMoves() []Move {
	return GenerateMoves(&that.board, that.turn)
}

// Outcome: the side to move loses when it has no pieces or no legal move.
func (that *Match) Outcome() game.Outcome {
	if !that.board.HasPieces(that.turn) || len(that.LegalMoves()) == 0 {
		return game.Win(string(that.turn.Opponent()))
	}

	return game.Ongoing()
}

// Play applies the legal move going from move.From to move.To. Anything that
// is not a generated legal move is ignored and false is returned.
func (that *Match) Play(move Move) bool {
	if that.Outcome().Finished() {
		return false
	}

	for _, legal := range that.LegalMoves() {
		if legal.From != move.From || legal.To != move.To {
			continue
		}

		that.push()
		Apply(&that.board, legal)
		that.turn = that.turn.Opponent()
		that.plies++

		return true
	}

	return false
}

func (that *Match) push() {
	that.history = append(that.history, snapshot{board: that.board.Clone(), turn: that.turn})

	if that.historyLimit > 0 && len(that.history) > that.historyLimit {
		that.history = that.history[len(that.history)-that.historyLimit:]
	}
}

// Undo restores the position before the last accepted ply.
func (that *Match) Undo() bool {
	if len(that.history) == 0 {
		return false
	}

	last := that.history[len(that.history)-1]
	that.history = that.history[:len(that.history)-1]

	that.board = last.board
	that.turn = last.turn
	that.plies--

	return true
}

func (that *Match) Reset() {
	that.board = NewBoard()
	that.turn = White
	that.plies = 0
	that.history = nil
}
