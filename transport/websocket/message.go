package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

const (
	actionUpdate = "game:update"
	actionMove   = "game:move"
	actionReset  = "game:reset"
	actionUndo   = "game:undo"
	actionHint   = "game:hint"
	actionPause  = "game:pause"
	actionResume = "game:resume"
	actionError  = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ResponsePayload struct {
	Session *entity.Session `json:"session,omitempty"`
	Hint    *entity.Move    `json:"hint,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func newMessage(action string, payload ResponsePayload) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	return Message{Action: action, Payload: raw}, nil
}
