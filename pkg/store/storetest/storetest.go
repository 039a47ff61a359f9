// Package storetest holds the behaviour every store.Store backend shares.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/grid"
	"github.com/matzehuels/blockfill/pkg/store"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

// Tiling returns a small valid tiling generated with strategy s.
func Tiling(s tiling.Strategy, seed int64) *tiling.Tiling {
	return &tiling.Tiling{
		Config: tiling.Config{Width: 2, Height: 2, MinBlock: 1, MaxBlock: 2, MaxSteps: 10, Seed: seed, Strategy: s},
		Steps:  2,
		Reason: tiling.ReasonExhausted,
		Rects: []grid.Rect{
			{ID: 0, X: 0, Y: 0, W: 2, H: 1},
			{ID: 1, X: 0, Y: 1, W: 2, H: 1},
		},
	}
}

// Run exercises a fresh store returned by open.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		s := open(t)
		run := store.NewRun(Tiling(tiling.StrategyGrowth, 3), "first")
		require.NoError(t, s.Save(ctx, run))

		got, err := s.Get(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, run.ID, got.ID)
		assert.Equal(t, "first", got.Name)
		assert.True(t, run.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", got.CreatedAt, run.CreatedAt)
		assert.Equal(t, run.Tiling.Config, got.Tiling.Config)
		assert.Equal(t, run.Tiling.Rects, got.Tiling.Rects)
		assert.Equal(t, tiling.ReasonExhausted, got.Tiling.Reason)
	})

	t.Run("SaveReplaces", func(t *testing.T) {
		s := open(t)
		run := store.NewRun(Tiling(tiling.StrategyGrowth, 3), "before")
		require.NoError(t, s.Save(ctx, run))
		run.Name = "after"
		require.NoError(t, s.Save(ctx, run))

		got, err := s.Get(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Name)

		runs, err := s.List(ctx, store.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, runs, 1)
	})

	t.Run("NotFound", func(t *testing.T) {
		s := open(t)
		id := uuid.NewString()

		_, err := s.Get(ctx, id)
		assert.True(t, errors.Is(err, errors.ErrCodeRunNotFound), "Get: %v", err)
		err = s.Delete(ctx, id)
		assert.True(t, errors.Is(err, errors.ErrCodeRunNotFound), "Delete: %v", err)
	})

	t.Run("InvalidID", func(t *testing.T) {
		s := open(t)
		_, err := s.Get(ctx, "../etc/passwd")
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidRunID), "Get: %v", err)

		bad := store.NewRun(Tiling(tiling.StrategyGrowth, 1), "")
		bad.ID = "nope"
		assert.Error(t, s.Save(ctx, bad))
	})

	t.Run("ListOrderAndFilter", func(t *testing.T) {
		s := open(t)
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		var ids []string
		for i, strat := range []tiling.Strategy{tiling.StrategyGrowth, tiling.StrategyTopLeft, tiling.StrategyGrowth} {
			run := store.NewRun(Tiling(strat, int64(i)), "")
			run.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			require.NoError(t, s.Save(ctx, run))
			ids = append(ids, run.ID)
		}

		runs, err := s.List(ctx, store.ListOptions{})
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, []string{ids[2], ids[1], ids[0]}, runIDs(runs))

		runs, err = s.List(ctx, store.ListOptions{Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{ids[2]}, runIDs(runs))

		runs, err = s.List(ctx, store.ListOptions{Strategy: tiling.StrategyTopLeft})
		require.NoError(t, err)
		assert.Equal(t, []string{ids[1]}, runIDs(runs))
	})

	t.Run("Delete", func(t *testing.T) {
		s := open(t)
		run := store.NewRun(Tiling(tiling.StrategyGrowth, 3), "")
		require.NoError(t, s.Save(ctx, run))
		require.NoError(t, s.Delete(ctx, run.ID))

		_, err := s.Get(ctx, run.ID)
		assert.True(t, errors.IsNotFound(err))
	})
}

func runIDs(runs []*store.Run) []string {
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	return ids
}
