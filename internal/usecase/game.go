package usecase

import (
	"context"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

type GameUseCase interface {
	CreateSession(ctx context.Context, req NewSession) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	CloseSession(ctx context.Context, id string) error

	MakeMove(ctx context.Context, id string, move entity.Move) (*entity.Session, error)
	Hint(ctx context.Context, id string) (entity.Move, error)
	Undo(ctx context.Context, id string) (*entity.Session, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
	Pause(ctx context.Context, id string) (*entity.Session, error)
	Resume(ctx context.Context, id string) (*entity.Session, error)

	Subscribe(id string) (<-chan *entity.Session, func(), error)
	ListResults(ctx context.Context, kind string, limit int64) ([]*entity.Result, error)
}

// NewSession describes the game to start. HumanSide only matters in vs-ai and
// defaults to the side that opens.
type NewSession struct {
	Kind       string `json:"kind"`
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty,omitempty"`
	HumanSide  string `json:"human_side,omitempty"`
}
