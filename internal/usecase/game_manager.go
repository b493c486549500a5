package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/checkers"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/game"
	"github.com/rocketscienceinc/gamehub-backend/internal/repository"
	"github.com/rocketscienceinc/gamehub-backend/internal/tictactoe"
	"github.com/rocketscienceinc/gamehub-backend/internal/turn"
)

const (
	persistTimeout     = 5 * time.Second
	subscriberBuffer   = 8
	defaultResultLimit = 20
	maxResultLimit     = 100
)

type sessionRepo interface {
	Save(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
	ListRecent(ctx context.Context, kind string, limit int64) ([]*entity.Result, error)
}

// Settings tune the AI of every session the manager creates.
type Settings struct {
	ThinkDelayMin     time.Duration
	ThinkDelayMax     time.Duration
	SloppinessVsHuman float64
	SloppinessAIvsAI  float64
	BadGames          bool
	HistoryLimit      int

	// NewRand returns the random source of one session. A source is only
	// used under its session's controller lock.
	NewRand   func() game.Rand
	Scheduler turn.Scheduler
	Now       func() time.Time
}

type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	resultRepo  resultRepo
	settings    Settings

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, resultRepo resultRepo, settings Settings) *GameManager {
	if settings.NewRand == nil {
		settings.NewRand = func() game.Rand { return game.NewRand(0) }
	}

	if settings.Scheduler == nil {
		settings.Scheduler = turn.Clock{}
	}

	if settings.Now == nil {
		settings.Now = time.Now
	}

	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
		resultRepo:  resultRepo,
		settings:    settings,
		sessions:    make(map[string]*liveSession),
	}
}

func (that *GameManager) CreateSession(ctx context.Context, req NewSession) (*entity.Session, error) {
	log := that.logger.With("method", "CreateSession")

	if !entity.ValidKind(req.Kind) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGame, req.Kind)
	}

	if !entity.ValidMode(req.Mode) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, req.Mode)
	}

	meta := entity.NewSession(uuid.NewString(), req.Kind, req.Mode)

	humanSides, aiSides, err := splitSides(req)
	if err != nil {
		return nil, err
	}

	meta.HumanSides = humanSides

	session := &liveSession{
		meta:          *meta,
		archivedRound: -1,
		subscribers:   make(map[int]chan *entity.Session),
	}

	opts := turn.Options{
		AISides:   aiSides,
		MinDelay:  that.settings.ThinkDelayMin,
		MaxDelay:  that.settings.ThinkDelayMax,
		Scheduler: that.settings.Scheduler,
		Logger:    that.logger.With("session", meta.ID),
		OnChange: func(turn.Change) {
			that.publish(session)
		},
	}

	rng := that.settings.NewRand()

	switch req.Kind {
	case entity.KindCheckers:
		difficulty, err := checkers.ParseDifficulty(req.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("failed to create checkers session: %w", err)
		}

		session.meta.Difficulty = string(difficulty)
		session.match = newCheckersMatch(that.settings.HistoryLimit, difficulty, rng, opts)
	case entity.KindTicTacToe:
		session.match = newTicTacToeMatch(that.opponent(req.Mode, rng), rng, opts)
	}

	that.mu.Lock()
	that.sessions[meta.ID] = session
	that.mu.Unlock()

	session.match.start()

	log.Info("session created", "session", meta.ID, "kind", req.Kind, "mode", req.Mode)

	return session.snapshot(), nil
}

func (that *GameManager) opponent(mode string, rng game.Rand) *tictactoe.Opponent {
	if mode == entity.ModeAIvsAI {
		opponent := tictactoe.NewOpponent(tictactoe.ModeAIvsAI, rng)
		opponent.Sloppiness = that.settings.SloppinessAIvsAI

		return opponent
	}

	opponent := tictactoe.NewOpponent(tictactoe.ModeVsHuman, rng)
	opponent.Sloppiness = that.settings.SloppinessVsHuman
	opponent.BadGames = that.settings.BadGames

	return opponent
}

func splitSides(req NewSession) ([]string, []string, error) {
	first, second := string(tictactoe.X), string(tictactoe.O)
	if req.Kind == entity.KindCheckers {
		first, second = string(checkers.White), string(checkers.Black)
	}

	switch req.Mode {
	case entity.ModeHotseat:
		return []string{first, second}, nil, nil
	case entity.ModeAIvsAI:
		return nil, []string{first, second}, nil
	}

	switch req.HumanSide {
	case "", first:
		return []string{first}, []string{second}, nil
	case second:
		return []string{second}, []string{first}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrInvalidSide, req.HumanSide)
	}
}

// GetSession returns the live session, or the last snapshot stored for it.
func (that *GameManager) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	if session, ok := that.live(id); ok {
		return session.snapshot(), nil
	}

	stored, err := that.sessionRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return stored, nil
}

func (that *GameManager) MakeMove(_ context.Context, id string, move entity.Move) (*entity.Session, error) {
	session, err := that.getLive(id)
	if err != nil {
		return nil, err
	}

	before := session.snapshot()
	if err = before.ConfirmOngoingState(); err != nil {
		return before, err
	}

	if before.State == string(turn.StatePaused) {
		return before, apperror.ErrGamePaused
	}

	if !before.IsHuman(before.Turn) || before.State == string(turn.StateAIThinking) {
		return before, apperror.ErrNotYourTurn
	}

	if !session.match.play(before.Turn, move) {
		return before, apperror.ErrIllegalMove
	}

	return session.snapshot(), nil
}

// Hint suggests the strongest move for the side to move.
func (that *GameManager) Hint(_ context.Context, id string) (entity.Move, error) {
	session, err := that.getLive(id)
	if err != nil {
		return entity.Move{}, err
	}

	if err = session.snapshot().ConfirmOngoingState(); err != nil {
		return entity.Move{}, err
	}

	move, ok := session.match.hint()
	if !ok {
		return entity.Move{}, apperror.ErrNoHint
	}

	return move, nil
}

func (that *GameManager) Undo(_ context.Context, id string) (*entity.Session, error) {
	session, err := that.getLive(id)
	if err != nil {
		return nil, err
	}

	if !session.match.undo() {
		return session.snapshot(), apperror.ErrNothingToUndo
	}

	return session.snapshot(), nil
}

func (that *GameManager) Reset(_ context.Context, id string) (*entity.Session, error) {
	return that.control(id, match.reset)
}

func (that *GameManager) Pause(_ context.Context, id string) (*entity.Session, error) {
	return that.control(id, match.pause)
}

func (that *GameManager) Resume(_ context.Context, id string) (*entity.Session, error) {
	return that.control(id, match.resume)
}

func (that *GameManager) control(id string, action func(match)) (*entity.Session, error) {
	session, err := that.getLive(id)
	if err != nil {
		return nil, err
	}

	action(session.match)

	return session.snapshot(), nil
}

// CloseSession stops the session, cancelling a pending AI move, and forgets it.
func (that *GameManager) CloseSession(ctx context.Context, id string) error {
	that.mu.Lock()
	session, ok := that.sessions[id]
	delete(that.sessions, id)
	that.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	session.match.stop()
	session.close()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session closed", "session", id)

	return nil
}

// Subscribe streams snapshots of a live session, starting with the current
// one. Snapshots arrive in publication order. The channel is closed when the
// session closes or cancel is called.
func (that *GameManager) Subscribe(id string) (<-chan *entity.Session, func(), error) {
	session, err := that.getLive(id)
	if err != nil {
		return nil, nil, err
	}

	updates, cancel := session.subscribe(that.settings.Now())

	return updates, cancel, nil
}

func (that *GameManager) ListResults(ctx context.Context, kind string, limit int64) ([]*entity.Result, error) {
	if kind != "" && !entity.ValidKind(kind) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGame, kind)
	}

	if limit <= 0 {
		limit = defaultResultLimit
	}

	limit = min(limit, maxResultLimit)

	results, err := that.resultRepo.ListRecent(ctx, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}

// Shutdown stops every live session.
func (that *GameManager) Shutdown() {
	that.mu.Lock()
	sessions := that.sessions
	that.sessions = make(map[string]*liveSession)
	that.mu.Unlock()

	for _, session := range sessions {
		session.match.stop()
		session.close()
	}
}

func (that *GameManager) live(id string) (*liveSession, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[id]

	return session, ok
}

func (that *GameManager) getLive(id string) (*liveSession, error) {
	session, ok := that.live(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return session, nil
}

// publish stores the snapshot, archives a finished round once and fans the
// snapshot out to subscribers. Storage failures are logged only. Nothing is
// published once the session is closed.
func (that *GameManager) publish(session *liveSession) {
	log := that.logger.With("method", "publish", "session", session.meta.ID)

	session.publishMu.Lock()
	defer session.publishMu.Unlock()

	if session.closed {
		return
	}

	snapshot := session.snapshot()
	snapshot.UpdatedAt = that.settings.Now()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := that.sessionRepo.Save(ctx, snapshot); err != nil {
		log.Error("failed to save session", "error", err)
	}

	if snapshot.IsFinished() && snapshot.Round > session.archivedRound {
		session.archivedRound = snapshot.Round

		resultID := snapshot.ID + ":" + strconv.Itoa(snapshot.Round)
		if err := that.resultRepo.Save(ctx, entity.NewResult(resultID, snapshot, snapshot.UpdatedAt)); err != nil {
			log.Error("failed to archive result", "error", err)
		} else {
			log.Info("round archived", "round", snapshot.Round, "winner", snapshot.Winner)
		}
	}

	session.broadcast(snapshot)
}

// subscribe holds publishMu so no publication slips between the first
// snapshot and the registration.
func (that *liveSession) subscribe(now time.Time) (<-chan *entity.Session, func()) {
	that.publishMu.Lock()
	defer that.publishMu.Unlock()

	updates := make(chan *entity.Session, subscriberBuffer)
	if that.closed {
		close(updates)
		return updates, func() {}
	}

	current := that.snapshot()
	current.UpdatedAt = now
	updates <- current

	that.subMu.Lock()
	id := that.nextSub
	that.nextSub++
	that.subscribers[id] = updates
	that.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			that.subMu.Lock()
			defer that.subMu.Unlock()

			if ch, ok := that.subscribers[id]; ok {
				delete(that.subscribers, id)
				close(ch)
			}
		})
	}

	return updates, cancel
}

// broadcast never blocks. A subscriber that lags loses its oldest update.
func (that *liveSession) broadcast(snapshot *entity.Session) {
	that.subMu.Lock()
	defer that.subMu.Unlock()

	for _, updates := range that.subscribers {
		select {
		case updates <- snapshot:
		default:
			// sends only happen here, so draining one frees a slot
			select {
			case <-updates:
			default:
			}
			updates <- snapshot
		}
	}
}

func (that *liveSession) closeSubscribers() {
	that.subMu.Lock()
	defer that.subMu.Unlock()

	for id, updates := range that.subscribers {
		delete(that.subscribers, id)
		close(updates)
	}
}
