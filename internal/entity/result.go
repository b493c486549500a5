package entity

import "time"

// Result is an archived finished round.
type Result struct {
	ID         string    `json:"id" bson:"_id"`
	SessionID  string    `json:"session_id" bson:"session_id"`
	Kind       string    `json:"kind" bson:"kind"`
	Mode       string    `json:"mode" bson:"mode"`
	Difficulty string    `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
	Winner     string    `json:"winner" bson:"winner"`
	WinnerIsAI bool      `json:"winner_is_ai" bson:"winner_is_ai"`
	Round      int       `json:"round" bson:"round"`
	Plies      int       `json:"plies" bson:"plies"`
	FinishedAt time.Time `json:"finished_at" bson:"finished_at"`
}

func NewResult(id string, session *Session, finishedAt time.Time) *Result {
	return &Result{
		ID:         id,
		SessionID:  session.ID,
		Kind:       session.Kind,
		Mode:       session.Mode,
		Difficulty: session.Difficulty,
		Winner:     session.Winner,
		WinnerIsAI: session.Winner != Tie && !session.IsHuman(session.Winner),
		Round:      session.Round,
		Plies:      session.Plies,
		FinishedAt: finishedAt,
	}
}
