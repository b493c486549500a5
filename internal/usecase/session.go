package usecase

import (
	"sync"

	"github.com/rocketscienceinc/gamehub-backend/internal/checkers"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/game"
	"github.com/rocketscienceinc/gamehub-backend/internal/tictactoe"
	"github.com/rocketscienceinc/gamehub-backend/internal/turn"
)

// match is one live game behind a turn controller.
type match interface {
	start()
	stop()
	pause()
	resume()
	reset()
	undo() bool
	play(side string, move entity.Move) bool
	hint() (entity.Move, bool)
	// view fills the game-specific part of a snapshot
	view(session *entity.Session)
}

type liveSession struct {
	meta  entity.Session
	match match

	// publishing is serialised so snapshots leave in order
	publishMu     sync.Mutex
	archivedRound int
	// closed sessions publish nothing more
	closed bool

	subMu       sync.Mutex
	subscribers map[int]chan *entity.Session
	nextSub     int
}

func (that *liveSession) snapshot() *entity.Session {
	session := that.meta
	session.HumanSides = append([]string(nil), that.meta.HumanSides...)
	that.match.view(&session)

	return &session
}

// close waits for an in-flight publish and blocks later ones.
func (that *liveSession) close() {
	that.publishMu.Lock()
	that.closed = true
	that.publishMu.Unlock()

	that.closeSubscribers()
}

func finishSnapshot(session *entity.Session, state turn.State, outcome game.Outcome, turnSide string) {
	session.State = string(state)

	switch {
	case outcome.IsWin():
		session.Status = entity.StatusFinished
		session.Winner = outcome.Winner
	case outcome.IsDraw():
		session.Status = entity.StatusFinished
		session.Winner = entity.Tie
	default:
		session.Status = entity.StatusOngoing
		session.Winner = ""
		session.Turn = turnSide
	}
}

// checkersGame counts rounds, which the bare match does not.
type checkersGame struct {
	*checkers.Match
	round int
}

func (that *checkersGame) Reset() {
	that.Match.Reset()
	that.round++
}

type checkersMatch struct {
	game     *checkersGame
	ctrl     *turn.Controller[checkers.Move]
	selector *checkers.Selector
	hinter   *checkers.Selector
}

func newCheckersMatch(historyLimit int, difficulty checkers.Difficulty, rng game.Rand, opts turn.Options) *checkersMatch {
	that := &checkersMatch{
		game:     &checkersGame{Match: checkers.NewMatch(historyLimit)},
		selector: checkers.NewSelector(difficulty, rng),
		hinter:   checkers.NewSelector(checkers.Hard, rng),
	}

	agent := turn.AgentFunc[checkers.Move](func() (checkers.Move, bool) {
		board := that.game.Board()
		return that.selector.Select(&board, that.game.Turn())
	})

	opts.Rand = rng
	that.ctrl = turn.New[checkers.Move](that.game, agent, opts)

	return that
}

func (that *checkersMatch) start() { that.ctrl.Start() }
func (that *checkersMatch) stop() { that.ctrl.Stop() }
func (that *checkersMatch) pause() { that.ctrl.Pause() }
func (that *checkersMatch) resume() { that.ctrl.Resume() }
func (that *checkersMatch) reset() { that.ctrl.Reset() }
func (that *checkersMatch) undo() bool { return that.ctrl.Undo() }

func (that *checkersMatch) play(side string, move entity.Move) bool {
	if move.From == nil || move.To == nil {
		return false
	}

	return that.ctrl.Play(side, checkers.Move{
		From: checkers.Pos{Row: move.From.Row, Col: move.From.Col},
		To:   checkers.Pos{Row: move.To.Row, Col: move.To.Col},
	})
}

func (that *checkersMatch) hint() (entity.Move, bool) {
	var (
		move checkers.Move
		ok   bool
	)

	that.ctrl.Inspect(func(turn.State) {
		if that.game.Outcome().Finished() {
			return
		}

		board := that.game.Board()
		move, ok = that.hinter.Select(&board, that.game.Turn())
	})

	if !ok {
		return entity.Move{}, false
	}

	return checkersMove(move), true
}

func (that *checkersMatch) view(session *entity.Session) {
	that.ctrl.Inspect(func(state turn.State) {
		board := that.game.Board()

		session.Board = make([][]string, checkers.Size)
		for row := range checkers.Size {
			session.Board[row] = make([]string, checkers.Size)
			for col := range checkers.Size {
				session.Board[row][col] = pieceCell(board.At(checkers.Pos{Row: row, Col: col}))
			}
		}

		session.Round = that.game.round
		session.Plies = that.game.Plies()

		outcome := that.game.Outcome()
		finishSnapshot(session, state, outcome, that.game.SideToMove())

		if !outcome.Finished() {
			for _, move := range that.game.LegalMoves() {
				session.LegalMoves = append(session.LegalMoves, checkersMove(move))
			}
		}
	})
}

func pieceCell(piece *checkers.Piece) string {
	switch {
	case piece == nil:
		return entity.EmptyCell
	case piece.King && piece.Color == checkers.White:
		return "W"
	case piece.King:
		return "B"
	default:
		return string(piece.Color)
	}
}

func checkersMove(move checkers.Move) entity.Move {
	return entity.Move{
		From:    &entity.Square{Row: move.From.Row, Col: move.From.Col},
		To:      &entity.Square{Row: move.To.Row, Col: move.To.Col},
		Capture: move.Capture,
	}
}

type ticTacToeMatch struct {
	game     *tictactoe.Match
	ctrl     *turn.Controller[int]
	opponent *tictactoe.Opponent
}

func newTicTacToeMatch(opponent *tictactoe.Opponent, rng game.Rand, opts turn.Options) *ticTacToeMatch {
	that := &ticTacToeMatch{
		game:     tictactoe.NewMatch(),
		opponent: opponent,
	}

	agent := turn.AgentFunc[int](func() (int, bool) {
		return that.opponent.Choose(that.game.Board(), that.game.Turn(), that.game.Round())
	})

	opts.Rand = rng
	that.ctrl = turn.New[int](that.game, agent, opts)

	return that
}

func (that *ticTacToeMatch) start() { that.ctrl.Start() }
func (that *ticTacToeMatch) stop() { that.ctrl.Stop() }
func (that *ticTacToeMatch) pause() { that.ctrl.Pause() }
func (that *ticTacToeMatch) resume() { that.ctrl.Resume() }
func (that *ticTacToeMatch) reset() { that.ctrl.Reset() }
func (that *ticTacToeMatch) undo() bool { return that.ctrl.Undo() }

func (that *ticTacToeMatch) play(side string, move entity.Move) bool {
	if move.Cell == nil {
		return false
	}

	return that.ctrl.Play(side, *move.Cell)
}

func (that *ticTacToeMatch) hint() (entity.Move, bool) {
	cell := -1

	that.ctrl.Inspect(func(turn.State) {
		_, cell = tictactoe.Minimax(that.game.Board(), that.game.Turn())
	})

	if cell < 0 {
		return entity.Move{}, false
	}

	return entity.Move{Cell: &cell}, true
}

func (that *ticTacToeMatch) view(session *entity.Session) {
	that.ctrl.Inspect(func(state turn.State) {
		board := that.game.Board()

		session.Board = make([][]string, 3)
		for row := range 3 {
			session.Board[row] = make([]string, 3)
			for col := range 3 {
				session.Board[row][col] = string(board[row*3+col])
			}
		}

		session.Round = that.game.Round()
		session.Plies = that.game.Moves()

		outcome := that.game.Outcome()
		finishSnapshot(session, state, outcome, that.game.SideToMove())

		if !outcome.Finished() {
			for _, cell := range that.game.OpenCells() {
				session.LegalMoves = append(session.LegalMoves, entity.Move{Cell: &cell})
			}
		}
	})
}
