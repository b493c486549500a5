package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	outboxSize     = 16
)

type uGame interface {
	MakeMove(ctx context.Context, id string, move entity.Move) (*entity.Session, error)
	Hint(ctx context.Context, id string) (entity.Move, error)
	Undo(ctx context.Context, id string) (*entity.Session, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
	Pause(ctx context.Context, id string) (*entity.Session, error)
	Resume(ctx context.Context, id string) (*entity.Session, error)

	// Subscribe delivers the current snapshot first, then every change in order.
	Subscribe(id string) (<-chan *entity.Session, func(), error)
}

type handlerFunc func(ctx context.Context, client *client, message *Message) error

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionMove] = server.handleMove
	server.handlers[actionReset] = server.handleReset
	server.handlers[actionUndo] = server.handleUndo
	server.handlers[actionHint] = server.handleHint
	server.handlers[actionPause] = server.handlePause
	server.handlers[actionResume] = server.handleResume

	return server
}

// ServeHTTP upgrades GET /ws?session=<id> and streams that session.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session is required", http.StatusBadRequest)
		return
	}

	updates, unsubscribe, err := that.uGame.Subscribe(sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	defer unsubscribe()

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log = log.With("session", sessionID)
	log.Info("WebSocket connection established")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := &client{
		sessionID: sessionID,
		outbox:    make(chan Message, outboxSize),
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		that.writeLoop(ctx, conn, c, updates)
	}()

	if err = that.readLoop(ctx, conn, c); websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		log.Error("error handling messages", "error", err)
	}

	cancel()
	<-done

	log.Info("WebSocket connection closed")
}

func (that *Server) readLoop(ctx context.Context, conn *websocket.Conn, c *client) error {
	log := that.logger.With("method", "readLoop", "session", c.sessionID)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if isJSONError(err) {
				c.send(actionError, ResponsePayload{Error: "malformed message"})
				continue
			}

			return err
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			c.send(message.Action, ResponsePayload{Error: "unknown action"})
			continue
		}

		if err := handler(ctx, c, &message); err != nil {
			log.Debug("action rejected", "action", message.Action, "error", err)
			c.send(message.Action, ResponsePayload{Error: err.Error()})
		}
	}
}

// writeLoop owns every write to conn.
func (that *Server) writeLoop(ctx context.Context, conn *websocket.Conn, c *client, updates <-chan *entity.Session) {
	log := that.logger.With("method", "writeLoop", "session", c.sessionID)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	write := func(message Message) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(message); err != nil {
			log.Error("failed to write message", "error", err)
			return false
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case message := <-c.outbox:
			if !write(message) {
				return
			}
		case session, ok := <-updates:
			if !ok {
				// session closed on the server
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"),
					time.Now().Add(writeWait))
				_ = conn.Close()
				return
			}

			message, err := newMessage(actionUpdate, ResponsePayload{Session: session})
			if err != nil {
				log.Error("failed to marshal update", "error", err)
				continue
			}

			if !write(message) {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

type client struct {
	sessionID string
	outbox    chan Message
}

// send queues a reply and drops it when the client lags.
func (that *client) send(action string, payload ResponsePayload) {
	message, err := newMessage(action, payload)
	if err != nil {
		return
	}

	select {
	case that.outbox <- message:
	default:
	}
}
