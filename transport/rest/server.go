package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

// NewRouter serves the REST API. A non-nil ws handler is mounted at /ws.
func NewRouter(logger *slog.Logger, handlers Handlers, ws http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/ping", handlers.PingHandler)

	r.Route("/games", func(r chi.Router) {
		r.Post("/", handlers.CreateGame)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetGame)
			r.Delete("/", handlers.CloseGame)
			r.Post("/moves", handlers.MakeMove)
			r.Get("/hint", handlers.Hint)
			r.Post("/undo", handlers.Undo)
			r.Post("/reset", handlers.Reset)
			r.Post("/pause", handlers.Pause)
			r.Post("/resume", handlers.Resume)
		})
	})

	r.Get("/results", handlers.ListResults)

	if ws != nil {
		r.Get("/ws", ws.ServeHTTP)
	}

	return r
}

func New(logger *slog.Logger, port string, handler http.Handler) *Server {
	return &Server{
		logger: logger,
		srv: &http.Server{
			Addr:        ":" + port,
			Handler:     handler,
			ReadTimeout: 10 * time.Second,
			IdleTimeout: 30 * time.Second,
		},
	}
}

// Start blocks until the server stops. ctx cancellation shuts it down.
func (that *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := that.srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	that.logger.Info("server started", "addr", that.srv.Addr)

	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
