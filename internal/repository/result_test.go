package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/testing/suite"
)

func newTestResult(id, kind string, finishedAt time.Time) *entity.Result {
	return &entity.Result{
		ID:         id,
		SessionID:  "session-" + id,
		Kind:       kind,
		Mode:       entity.ModeVsAI,
		Winner:     "X",
		Plies:      7,
		FinishedAt: finishedAt,
	}
}

func TestResultRepository_Save(t *testing.T) {
	t.Run("Save_Success", func(t *testing.T) {
		ctx, st := suite.NewMongo(t)

		resultRepo := NewResultRepository(st.Mongo)

		// Given: a finished round
		result := newTestResult("1", entity.KindTicTacToe, time.Now().UTC())

		// When
		err := resultRepo.Save(ctx, result)

		// Then
		require.NoError(t, err)
	})

	t.Run("Save_Twice", func(t *testing.T) {
		ctx, st := suite.NewMongo(t)

		resultRepo := NewResultRepository(st.Mongo)
		result := newTestResult("1", entity.KindTicTacToe, time.Now().UTC())
		require.NoError(t, resultRepo.Save(ctx, result))

		// When: the same round is archived again
		err := resultRepo.Save(ctx, result)

		// Then: it is ignored and stored once
		require.NoError(t, err)

		results, err := resultRepo.ListRecent(ctx, "", 10)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})
}

func TestResultRepository_ListRecent(t *testing.T) {
	ctx, st := suite.NewMongo(t)

	resultRepo := NewResultRepository(st.Mongo)

	// Given: results of both games at different times
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, resultRepo.Save(ctx, newTestResult("1", entity.KindTicTacToe, base)))
	require.NoError(t, resultRepo.Save(ctx, newTestResult("2", entity.KindCheckers, base.Add(time.Minute))))
	require.NoError(t, resultRepo.Save(ctx, newTestResult("3", entity.KindTicTacToe, base.Add(2*time.Minute))))

	t.Run("All kinds newest first", func(t *testing.T) {
		results, err := resultRepo.ListRecent(ctx, "", 10)

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "3", results[0].ID)
		assert.Equal(t, "2", results[1].ID)
		assert.Equal(t, "1", results[2].ID)
		assert.True(t, base.Equal(results[2].FinishedAt))
	})

	t.Run("Filtered by kind", func(t *testing.T) {
		results, err := resultRepo.ListRecent(ctx, entity.KindCheckers, 10)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "2", results[0].ID)
	})

	t.Run("Limited", func(t *testing.T) {
		results, err := resultRepo.ListRecent(ctx, "", 2)

		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("Nothing stored", func(t *testing.T) {
		results, err := resultRepo.ListRecent(ctx, "chess", 10)

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
