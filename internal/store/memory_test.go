package store

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pairs/internal/clock"
	"github.com/robalobadob/pairs/internal/game"
	"github.com/robalobadob/pairs/internal/settings"
)

func newStore(clk *clock.Manual) (Store, *int) {
	built := 0
	st := NewMemoryStore(clk, func(string) *game.Table {
		built++
		return game.NewTable(clk, game.WithLogger(zerolog.Nop()))
	})
	return st, &built
}

func TestOpen_ReusesTable(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Unix(0, 0))
	st, built := newStore(clk)

	a := st.Open(ctx, "alice")
	assert.Same(t, a, st.Open(ctx, "alice"))
	assert.NotSame(t, a, st.Open(ctx, "bob"))
	assert.Equal(t, 2, *built)
	assert.Equal(t, 2, st.Len())

	got, err := st.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = st.Get(ctx, "carol")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_ClosesTable(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Unix(0, 0))
	st, _ := newStore(clk)

	tb := st.Open(ctx, "alice")
	_, err := tb.Start(settings.Form{Columns: "4", MaxRank: 2})
	require.NoError(t, err)
	require.Equal(t, 1, clk.Pending())

	require.NoError(t, st.Delete(ctx, "alice"))
	assert.Equal(t, 0, clk.Pending())
	assert.Equal(t, 0, st.Len())
	assert.ErrorIs(t, st.Delete(ctx, "alice"), ErrNotFound)
}

func TestPrune_EvictsIdleTables(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Unix(0, 0))
	st, _ := newStore(clk)

	idle := st.Open(ctx, "idle")
	_, err := idle.Start(settings.Form{Columns: "4", MaxRank: 2})
	require.NoError(t, err)
	st.Open(ctx, "busy")

	clk.Advance(90 * time.Minute)
	_, err = st.Get(ctx, "busy")
	require.NoError(t, err)
	clk.Advance(time.Hour)

	assert.Equal(t, 1, st.Prune(ctx, 2*time.Hour))
	assert.Equal(t, 1, st.Len())
	_, err = st.Get(ctx, "idle")
	assert.ErrorIs(t, err, ErrNotFound)
	_, ok := idle.Active()
	assert.False(t, ok, "pruned table is closed")

	assert.Equal(t, 0, st.Prune(ctx, 2*time.Hour))
}
