package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/usecase"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	CloseGame(w http.ResponseWriter, r *http.Request)
	MakeMove(w http.ResponseWriter, r *http.Request)
	Hint(w http.ResponseWriter, r *http.Request)
	Undo(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	Pause(w http.ResponseWriter, r *http.Request)
	Resume(w http.ResponseWriter, r *http.Request)
	ListResults(w http.ResponseWriter, r *http.Request)
}

type uGame interface {
	CreateSession(ctx context.Context, req usecase.NewSession) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	CloseSession(ctx context.Context, id string) error

	MakeMove(ctx context.Context, id string, move entity.Move) (*entity.Session, error)
	Hint(ctx context.Context, id string) (entity.Move, error)
	Undo(ctx context.Context, id string) (*entity.Session, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
	Pause(ctx context.Context, id string) (*entity.Session, error)
	Resume(ctx context.Context, id string) (*entity.Session, error)

	ListResults(ctx context.Context, kind string, limit int64) ([]*entity.Result, error)
}

type handlers struct {
	logger *slog.Logger
	uGame  uGame
}

func NewHandlers(logger *slog.Logger, uGame uGame) Handlers {
	return &handlers{
		logger: logger,
		uGame:  uGame,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req usecase.NewSession
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	session, err := that.uGame.CreateSession(r.Context(), req)
	if err != nil {
		that.fail(w, "CreateGame", err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.uGame.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.fail(w, "GetGame", err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (that *handlers) CloseGame(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.CloseSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.fail(w, "CloseGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var move entity.Move
	if err := json.NewDecoder(r.Body).Decode(&move); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	session, err := that.uGame.MakeMove(r.Context(), chi.URLParam(r, "id"), move)
	if err != nil {
		that.fail(w, "MakeMove", err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (that *handlers) Hint(w http.ResponseWriter, r *http.Request) {
	move, err := that.uGame.Hint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.fail(w, "Hint", err)
		return
	}

	writeJSON(w, http.StatusOK, move)
}

func (that *handlers) Undo(w http.ResponseWriter, r *http.Request) {
	that.control(w, r, "Undo", that.uGame.Undo)
}

func (that *handlers) Reset(w http.ResponseWriter, r *http.Request) {
	that.control(w, r, "Reset", that.uGame.Reset)
}

func (that *handlers) Pause(w http.ResponseWriter, r *http.Request) {
	that.control(w, r, "Pause", that.uGame.Pause)
}

func (that *handlers) Resume(w http.ResponseWriter, r *http.Request) {
	that.control(w, r, "Resume", that.uGame.Resume)
}

func (that *handlers) control(
	w http.ResponseWriter,
	r *http.Request,
	method string,
	action func(ctx context.Context, id string) (*entity.Session, error),
) {
	session, err := action(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.fail(w, method, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (that *handlers) ListResults(w http.ResponseWriter, r *http.Request) {
	var limit int64

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a number"})
			return
		}

		limit = parsed
	}

	results, err := that.uGame.ListResults(r.Context(), r.URL.Query().Get("kind"), limit)
	if err != nil {
		that.fail(w, "ListResults", err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (that *handlers) fail(w http.ResponseWriter, method string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	} else {
		that.logger.Debug("request rejected", "method", method, "error", err)
	}

	writeError(w, err)
}
