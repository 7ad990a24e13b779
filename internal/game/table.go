// internal/game/table.go
//
// Table hosts the single active session of one player.
//
// All events, whether clicks from the input side or callbacks from the
// clock, enter through the table and are applied under one mutex, so the
// session sees a strictly sequential stream. Starting a new session retires
// the previous one (tick, revert and win timers stopped) before the next deck
// is built.

package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pairs/internal/clock"
	"github.com/robalobadob/pairs/internal/deck"
	"github.com/robalobadob/pairs/internal/settings"
)

// Table owns at most one active Session.
type Table struct {
	mu      sync.Mutex
	active  *Session
	clk     clock.Clock
	render  Renderer
	present Presenter
	log     zerolog.Logger
}

// Option customises a Table.
type Option func(*Table)

// WithRenderer sets the card renderer.
func WithRenderer(r Renderer) Option {
	return func(t *Table) { t.render = r }
}

// WithPresenter sets the receiver of tick, win and config-error signals.
func WithPresenter(p Presenter) Option {
	return func(t *Table) { t.present = p }
}

// WithLogger sets the table's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Table) { t.log = l }
}

// NewTable returns an empty table driven by clk.
func NewTable(clk clock.Clock, opts ...Option) *Table {
	t := &Table{
		clk:     clk,
		render:  nopRenderer{},
		present: nopPresenter{},
		log:     log.Logger,
	}
	for _, o := range opts {
		o(t)
	}
	t.log = t.log.With().Str("component", "table").Logger()
	return t
}

// Start validates f and, if it is acceptable, replaces the active session
// with a freshly dealt one. On a validation error the presenter is told,
// the error is returned and the current session is left untouched.
func (t *Table) Start(f settings.Form) (View, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cfg, err := settings.Parse(f)
	if err != nil {
		t.log.Warn().Err(err).Str("columns", f.Columns).Int("maxRank", f.MaxRank).Msg("settings rejected")
		t.present.ConfigError(err.Error())
		return View{}, err
	}

	if t.active != nil {
		t.active.retire()
		t.active = nil
	}

	rng := deck.DefaultRand
	if cfg.Seed != nil {
		rng = deck.Seeded(*cfg.Seed)
	}
	cards, err := deck.Build(cfg.MaxRank, cfg.Columns, rng)
	if err != nil {
		return View{}, err
	}

	id := uuid.New()
	s := &Session{
		id:             id,
		cfg:            cfg,
		cards:          cards,
		pairsRemaining: len(cards) / 2,
		phase:          PhaseEmpty,
		clk:            t.clk,
		render:         t.render,
		present:        t.present,
		dispatch:       func(ev Event) { t.dispatch(id, ev) },
		log:            t.log.With().Str("session", id.String()).Logger(),
	}
	t.active = s
	s.begin()

	s.log.Debug().
		Int("columns", cfg.Columns).
		Int("maxRank", cfg.MaxRank).
		Bool("colorSensitive", cfg.ColorSensitive).
		Int("pairs", s.pairsRemaining).
		Msg("session started")
	return s.view(), nil
}

// Click delivers a click on slot to session id.
func (t *Table) Click(id uuid.UUID, slot int) (Outcome, View, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return OutcomeIgnored, View{}, ErrNoSession
	}
	if t.active.id != id {
		return OutcomeIgnored, t.active.view(), ErrStaleSession
	}
	out, err := t.active.apply(Click{Slot: slot})
	return out, t.active.view(), err
}

// Snapshot returns the client-facing view of the active session.
func (t *Table) Snapshot() (View, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return View{}, ErrNoSession
	}
	return t.active.view(), nil
}

// Active returns the ID of the active session, if any.
func (t *Table) Active() (uuid.UUID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return uuid.Nil, false
	}
	return t.active.id, true
}

// Close retires the active session.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil {
		t.active.retire()
		t.active = nil
	}
}

// dispatch applies a timer event, dropping it unless id is still active.
func (t *Table) dispatch(id uuid.UUID, ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil || t.active.id != id {
		t.log.Debug().Str("session", id.String()).Type("event", ev).Msg("stale timer event dropped")
		return
	}
	if _, err := t.active.apply(ev); err != nil {
		t.log.Debug().Err(err).Type("event", ev).Msg("timer event rejected")
	}
}
