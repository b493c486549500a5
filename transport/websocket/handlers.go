package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

func (that *Server) handleMove(ctx context.Context, c *client, msg *Message) error {
	var move entity.Move
	if err := json.Unmarshal(msg.Payload, &move); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	// the resulting snapshot reaches the client through the subscription
	if _, err := that.uGame.MakeMove(ctx, c.sessionID, move); err != nil {
		return err
	}

	return nil
}

func (that *Server) handleReset(ctx context.Context, c *client, _ *Message) error {
	_, err := that.uGame.Reset(ctx, c.sessionID)
	return err
}

func (that *Server) handleUndo(ctx context.Context, c *client, _ *Message) error {
	_, err := that.uGame.Undo(ctx, c.sessionID)
	return err
}

func (that *Server) handlePause(ctx context.Context, c *client, _ *Message) error {
	_, err := that.uGame.Pause(ctx, c.sessionID)
	return err
}

func (that *Server) handleResume(ctx context.Context, c *client, _ *Message) error {
	_, err := that.uGame.Resume(ctx, c.sessionID)
	return err
}

func (that *Server) handleHint(ctx context.Context, c *client, msg *Message) error {
	hint, err := that.uGame.Hint(ctx, c.sessionID)
	if err != nil {
		return err
	}

	c.send(msg.Action, ResponsePayload{Hint: &hint})

	return nil
}

func isJSONError(err error) bool {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}
