package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pairs/internal/clock"
	"github.com/robalobadob/pairs/internal/deck"
	"github.com/robalobadob/pairs/internal/game"
	"github.com/robalobadob/pairs/internal/settings"
)

func newTestModel(t *testing.T, cols string) (Model, *clock.Manual, sink) {
	t.Helper()
	clk := clock.NewManual(time.Unix(0, 0))
	signals := make(sink, signalBuffer)
	table := game.NewTable(clk, game.WithRenderer(signals), game.WithPresenter(signals), game.WithLogger(zerolog.Nop()))
	seed := uint64(3)
	m := NewModel(table, settings.Form{Columns: cols, MaxRank: 2, Seed: &seed}, signals)
	return m, clk, signals
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

// dealt rebuilds the seeded deal so tests know what lies face-down.
func dealt(t *testing.T) []*deck.Card {
	t.Helper()
	cards, err := deck.Build(2, 4, deck.Seeded(3))
	require.NoError(t, err)
	return cards
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// drain feeds every queued engine message to the model.
func drain(m Model, signals sink) Model {
	for {
		select {
		case msg := <-signals:
			next, _ := m.Update(msg)
			m = next.(Model)
		default:
			return m
		}
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	m, _, _ := newTestModel(t, "4")
	require.Empty(t, m.err)
	require.Len(t, m.board.Cards, 8)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	m = press(t, m, runes("l"), runes("l"), runes("l"), runes("l"))
	assert.Equal(t, 3, m.cursor)
	m = press(t, m, runes("j"), runes("j"))
	assert.Equal(t, 7, m.cursor)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, runes("k"))
	assert.Equal(t, 2, m.cursor)
}

func TestFlipAndRevert(t *testing.T) {
	m, clk, signals := newTestModel(t, "4")

	// find a mismatching neighbour for slot 0
	cards := dealt(t)
	other := -1
	for i, c := range cards {
		if i > 0 && c.Rank() != cards[0].Rank() {
			other = i
			break
		}
	}
	require.NotEqual(t, -1, other)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, "up", m.board.Cards[0].Face)

	m.cursor = other
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "showing_mismatch", m.board.Phase)

	clk.Advance(game.MismatchDelay)
	m = drain(m, signals)
	assert.Equal(t, "empty", m.board.Phase)
	assert.Equal(t, "down", m.board.Cards[0].Face)
	assert.Equal(t, 1, m.elapsed)
}

func TestNewGameAndConfigError(t *testing.T) {
	m, _, _ := newTestModel(t, "4")
	first := m.board.SessionID

	m = press(t, m, runes("n"))
	assert.NotEqual(t, first, m.board.SessionID)
	assert.False(t, m.won)

	m.form.Columns = "20"
	m = press(t, m, runes("n"))
	assert.Equal(t, "columns must be between 2 and 13", m.err)
	id, ok := m.table.Active()
	require.True(t, ok)
	assert.Equal(t, m.board.SessionID, id)
	assert.Contains(t, m.View(), "columns must be between 2 and 13")
}

func TestWinMessage(t *testing.T) {
	m, clk, signals := newTestModel(t, "4")

	cards := dealt(t)
	for r := 1; r <= 2; r++ {
		var slots []int
		for i, c := range cards {
			if int(c.Rank()) == r {
				slots = append(slots, i)
			}
		}
		for _, s := range slots {
			m.cursor = s
			m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
		}
	}
	assert.Equal(t, "complete", m.board.Phase)

	clk.Advance(game.WinDelay)
	m = drain(m, signals)
	assert.True(t, m.won)
	assert.Contains(t, m.View(), "All pairs found")
}

func TestSink_FullBufferKeepsOneShotSignals(t *testing.T) {
	s := make(sink, 2)
	s.Resize(1, 1)
	s.Resize(1, 1)
	s.Resize(1, 1) // dropped
	s.Won()
	s.ConfigError("columns must be a number")

	var got []tea.Msg
	timeout := time.After(2 * time.Second)
	for len(got) < 4 {
		select {
		case msg := <-s:
			got = append(got, msg)
		case <-timeout:
			t.Fatalf("only received %v", got)
		}
	}
	assert.Contains(t, got, tea.Msg(wonMsg{}))
	assert.Contains(t, got, tea.Msg(configErrorMsg{message: "columns must be a number"}))
	assert.Equal(t, 2, countBoard(got))
}

func countBoard(msgs []tea.Msg) int {
	n := 0
	for _, m := range msgs {
		if _, ok := m.(boardChangedMsg); ok {
			n++
		}
	}
	return n
}
