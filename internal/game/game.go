package game

const (
	StatusOngoing Status = "ongoing"
	StatusWin     Status = "win"
	StatusDraw    Status = "draw"
)

// Status classifies the position after a completed move.
type Status string

// Outcome is re-derived from the board after every ply and never cached.
type Outcome struct {
	Status Status `json:"status"`
	Winner string `json:"winner,omitempty"`
}

func Ongoing() Outcome {
	return Outcome{Status: StatusOngoing}
}

func Win(side string) Outcome {
	return Outcome{Status: StatusWin, Winner: side}
}

func Draw() Outcome {
	return Outcome{Status: StatusDraw}
}

func (that Outcome) Finished() bool {
	return that.Status != StatusOngoing
}

func (that Outcome) IsWin() bool {
	return that.Status == StatusWin
}

func (that Outcome) IsDraw() bool {
	return that.Status == StatusDraw
}
