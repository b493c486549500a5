package turn

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/gamehub-backend/internal/game"
)

const (
	StateWaitingForHuman State = "waiting-for-human"
	StateAIThinking      State = "ai-thinking"
	StatePaused          State = "paused"
	StateTerminal        State = "terminal"
	StateStopped         State = "stopped"
)

type State string

// Game is the rules side of a turn-based match.
type Game[M any] interface {
	SideToMove() string
	Play(move M) bool
	Outcome() game.Outcome
	Reset()
}

type undoer interface {
	Undo() bool
}

// Agent picks the move for the side to move. Choose is called with the
// controller lock held, so it may read the game directly.
type Agent[M any] interface {
	Choose() (M, bool)
}

type AgentFunc[M any] func() (M, bool)

func (that AgentFunc[M]) Choose() (M, bool) {
	return that()
}

// Change is published after every transition. Version grows monotonically so
// listeners can drop notifications that arrive out of order.
type Change struct {
	Version    uint64
	State      State
	Outcome    game.Outcome
	SideToMove string
	ByAI       bool
}

type Options struct {
	// AISides names the sides played by the agent.
	AISides []string

	// The think delay is drawn uniformly from [MinDelay, MaxDelay].
	MinDelay time.Duration
	MaxDelay time.Duration

	Scheduler Scheduler
	Rand      game.Rand
	Logger    *slog.Logger

	OnChange func(Change)
}

// Controller alternates sides, waits for human input, and commits the AI move
// after a scheduled delay. Pending AI moves are cancelled on reset, pause,
// undo and stop.
type Controller[M any] struct {
	mu sync.Mutex

	game  Game[M]
	agent Agent[M]
	ai    map[string]bool

	minDelay  time.Duration
	maxDelay  time.Duration
	scheduler Scheduler
	rand      game.Rand
	logger    *slog.Logger
	onChange  func(Change)

	state      State
	pending    Timer
	generation uint64
	version    uint64
}

func New[M any](g Game[M], agent Agent[M], opts Options) *Controller[M] {
	ai := make(map[string]bool, len(opts.AISides))
	for _, side := range opts.AISides {
		ai[side] = true
	}

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = Clock{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller[M]{
		game:      g,
		agent:     agent,
		ai:        ai,
		minDelay:  opts.MinDelay,
		maxDelay:  opts.MaxDelay,
		scheduler: scheduler,
		rand:      opts.Rand,
		logger:    logger.With("component", "turn"),
		onChange:  opts.OnChange,
		state:     StatePaused,
	}
}

// Start derives the first state, scheduling the AI if it opens.
func (that *Controller[M]) Start() {
	that.mu.Lock()
	if that.state == StateStopped {
		that.mu.Unlock()
		return
	}

	that.advance()
	change := that.change(false)
	that.mu.Unlock()

	that.notify(change)
}

func (that *Controller[M]) State() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state
}

func (that *Controller[M]) IsAI(side string) bool {
	return that.ai[side]
}

// Inspect runs fn under the controller lock for a consistent read of the game
// and the controller state.
func (that *Controller[M]) Inspect(fn func(state State)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	fn(that.state)
}

// Play applies a human move. Input for the wrong side, while the AI is
// thinking, after the game ended, or that the rules reject is ignored.
func (that *Controller[M]) Play(side string, move M) bool {
	that.mu.Lock()

	if that.state != StateWaitingForHuman || that.ai[side] || side != that.game.SideToMove() {
		that.mu.Unlock()
		return false
	}

	if !that.game.Play(move) {
		that.mu.Unlock()
		return false
	}

	that.advance()
	change := that.change(false)
	that.mu.Unlock()

	that.notify(change)

	return true
}

func (that *Controller[M]) Reset() {
	that.mu.Lock()
	if that.state == StateStopped {
		that.mu.Unlock()
		return
	}

	that.cancel()
	that.game.Reset()
	that.advance()
	change := that.change(false)
	that.mu.Unlock()

	that.notify(change)
}

func (that *Controller[M]) Pause() {
	that.mu.Lock()
	if that.state == StateStopped || that.state == StateTerminal || that.state == StatePaused {
		that.mu.Unlock()
		return
	}

	that.cancel()
	that.state = StatePaused
	change := that.change(false)
	that.mu.Unlock()

	that.notify(change)
}

func (that *Controller[M]) Resume() {
	that.mu.Lock()
	if that.state != StatePaused {
		that.mu.Unlock()
		return
	}

	that.advance()
	change := that.change(false)
	that.mu.Unlock()

	that.notify(change)
}

// Stop cancels any pending AI move for good.
func (that *Controller[M]) Stop() {
	that.mu.Lock()
	if that.state == StateStopped {
		that.mu.Unlock()
		return
	}

	that.cancel()
	that.state = StateStopped
	change := that.change(false)
	that.mu.Unlock()

	that.notify(change)
}

// Undo takes back plies until a human side is to move. With no human side a
// single ply is taken back. It returns false when the game keeps no history.
func (that *Controller[M]) Undo() bool {
	that.mu.Lock()

	u, ok := that.game.(undoer)
	if !ok || that.state == StateStopped {
		that.mu.Unlock()
		return false
	}

	wasPaused := that.state == StatePaused
	that.cancel()

	undone := false
	for u.Undo() {
		undone = true
		if !that.ai[that.game.SideToMove()] || !that.hasHuman() {
			break
		}
	}

	if wasPaused {
		that.state = StatePaused
	} else {
		that.advance()
	}

	change := that.change(false)
	that.mu.Unlock()

	that.notify(change)

	return undone
}

func (that *Controller[M]) hasHuman() bool {
	// two sides; any side not listed as AI is human
	return len(that.ai) < 2
}

// advance re-derives the state from the game. Lock must be held.
func (that *Controller[M]) advance() {
	that.cancel()

	switch {
	case that.game.Outcome().Finished():
		that.state = StateTerminal
	case that.ai[that.game.SideToMove()] && that.agent != nil:
		that.state = StateAIThinking
		that.schedule()
	default:
		that.state = StateWaitingForHuman
	}
}

func (that *Controller[M]) schedule() {
	that.generation++
	generation := that.generation

	that.pending = that.scheduler.AfterFunc(that.delay(), func() {
		that.fire(generation)
	})
}

func (that *Controller[M]) cancel() {
	if that.pending != nil {
		that.pending.Stop()
		that.pending = nil
	}

	// a task that already fired and waits on the lock is now stale
	that.generation++
}

func (that *Controller[M]) fire(generation uint64) {
	log := that.logger.With("method", "fire")

	that.mu.Lock()

	if generation != that.generation || that.state != StateAIThinking {
		that.mu.Unlock()
		return
	}

	that.pending = nil
	side := that.game.SideToMove()

	move, ok := that.agent.Choose()
	if !ok || !that.game.Play(move) {
		log.Error("agent produced no legal move", "side", side)
		that.state = StatePaused
	} else {
		that.advance()
	}

	change := that.change(true)
	that.mu.Unlock()

	that.notify(change)
}

func (that *Controller[M]) delay() time.Duration {
	if that.maxDelay <= that.minDelay || that.rand == nil {
		return that.minDelay
	}

	spread := float64(that.maxDelay - that.minDelay)

	return that.minDelay + time.Duration(that.rand.Float64()*spread)
}

func (that *Controller[M]) change(byAI bool) Change {
	that.version++

	return Change{
		Version:    that.version,
		State:      that.state,
		Outcome:    that.game.Outcome(),
		SideToMove: that.game.SideToMove(),
		ByAI:       byAI,
	}
}

func (that *Controller[M]) notify(change Change) {
	if that.onChange != nil {
		that.onChange(change)
	}
}
