package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/gamehub-backend/internal/config"
	"github.com/rocketscienceinc/gamehub-backend/internal/game"
	"github.com/rocketscienceinc/gamehub-backend/internal/repository"
	"github.com/rocketscienceinc/gamehub-backend/internal/repository/storage"
	"github.com/rocketscienceinc/gamehub-backend/internal/turn"
	"github.com/rocketscienceinc/gamehub-backend/internal/usecase"
	"github.com/rocketscienceinc/gamehub-backend/transport/rest"
	"github.com/rocketscienceinc/gamehub-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	mongoStorage, err := storage.NewMongoStorage(ctx, conf.Mongo.URI, conf.Mongo.Database)
	if err != nil {
		return fmt.Errorf("could not connect to mongo storage: %w", err)
	}

	defer func() {
		if err = mongoStorage.Close(context.Background()); err != nil {
			log.Error("could not close mongo storage", "error", err)
		}
	}()

	sessionRepo := repository.NewSessionRepository(redisStorage.Connection, conf.Redis.SessionTTL)
	resultRepo := repository.NewResultRepository(mongoStorage.Database)

	gameManager := usecase.NewGameManager(logger, sessionRepo, resultRepo, newSettings(conf))
	defer gameManager.Shutdown()

	wsServer := websocket.New(logger, gameManager)
	router := rest.NewRouter(logger, rest.NewHandlers(logger, gameManager), wsServer)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, conf.HTTPPort, router).Start(ctx); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newSettings(conf *config.Config) usecase.Settings {
	return usecase.Settings{
		ThinkDelayMin:     conf.AI.ThinkDelayMin,
		ThinkDelayMax:     conf.AI.ThinkDelayMax,
		SloppinessVsHuman: conf.AI.SloppinessVsHuman,
		SloppinessAIvsAI:  conf.AI.SloppinessAIvsAI,
		BadGames:          conf.AI.BadGames,
		HistoryLimit:      conf.Checkers.HistoryLimit,
		NewRand:           game.RandFactory(conf.AI.Seed),
		Scheduler:         turn.Clock{},
	}
}
