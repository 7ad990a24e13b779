// internal/game/session.go
//
// One game instance from deal to completion or restart.
//
// State transitions on Click(c):
//   - ignored while showing a mismatch, after completion, or if c is face-up.
//   - empty        → flip c, one_selected(c)
//   - one_selected → flip c; match → empty (or complete when no pairs remain),
//                    mismatch → showing_mismatch(first, c) and a revert is scheduled.
//
// Timer callbacks never touch a session directly: they post an event
// tagged with the session ID (and, for reverts, the turn number) through the
// owning Table, which drops it if the session or turn has moved on.

package game

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/robalobadob/pairs/internal/clock"
	"github.com/robalobadob/pairs/internal/deck"
	"github.com/robalobadob/pairs/internal/settings"
)

// Session holds the deck and turn state of one game.
type Session struct {
	id    uuid.UUID
	cfg   settings.Config
	cards []*deck.Card // indexed by board slot

	pairsRemaining int
	phase          Phase
	first, second  *deck.Card
	turn           uint64

	start time.Time
	end   time.Time

	tick, revert, win clock.Timer
	retired           bool

	clk      clock.Clock
	render   Renderer
	present  Presenter
	dispatch func(Event)
	log      zerolog.Logger
}

func (s *Session) Phase() Phase        { return s.phase }
func (s *Session) PairsRemaining() int { return s.pairsRemaining }

// Elapsed is the play time so far, frozen once the session is complete.
func (s *Session) Elapsed() time.Duration {
	if s.phase == PhaseComplete {
		return s.end.Sub(s.start)
	}
	return s.clk.Now().Sub(s.start)
}

// ElapsedSeconds is Elapsed rounded to whole seconds for display.
func (s *Session) ElapsedSeconds() int {
	return int(math.Round(s.Elapsed().Seconds()))
}

// begin deals the board to the renderer and starts the session timer.
func (s *Session) begin() {
	s.render.Resize(GridWidthPx*s.cfg.Columns, GridHeightPx*s.cfg.Rows())
	for _, c := range s.cards {
		s.render.Render(c, c.Face(), c.Position())
	}
	s.start = s.clk.Now()
	s.present.ElapsedTick(0)
	s.tick = s.clk.Every(TickInterval, func() { s.dispatch(Tick{}) })
}

// apply is the transition function. Callers hold the table lock.
func (s *Session) apply(ev Event) (Outcome, error) {
	if s.retired {
		return OutcomeIgnored, ErrStaleSession
	}
	switch ev := ev.(type) {
	case Click:
		if ev.Slot < 0 || ev.Slot >= len(s.cards) {
			return OutcomeIgnored, ErrUnknownSlot
		}
		return s.click(s.cards[ev.Slot]), nil
	case RevertDue:
		return s.revertMismatch(ev.Turn), nil
	case WinDue:
		return s.announceWin(), nil
	case Tick:
		return s.onTick(), nil
	}
	return OutcomeIgnored, nil
}

func (s *Session) click(c *deck.Card) Outcome {
	if s.phase == PhaseShowingMismatch || s.phase == PhaseComplete || c.IsUp() {
		return OutcomeIgnored
	}
	s.flip(c, deck.FaceUp)

	if s.phase == PhaseEmpty {
		s.first = c
		s.phase = PhaseOneSelected
		return OutcomeSelected
	}

	first := s.first
	if s.matches(first, c) {
		s.first = nil
		s.pairsRemaining--
		if s.pairsRemaining == 0 {
			s.complete()
			return OutcomeCompleted
		}
		s.phase = PhaseEmpty
		return OutcomeMatched
	}

	s.second = c
	s.phase = PhaseShowingMismatch
	s.turn++
	turn := s.turn
	s.revert = s.clk.AfterFunc(MismatchDelay, func() { s.dispatch(RevertDue{Turn: turn}) })
	s.log.Debug().Uint64("turn", turn).Str("first", first.Label()).Str("second", c.Label()).Msg("mismatch")
	return OutcomeMismatched
}

func (s *Session) matches(a, b *deck.Card) bool {
	if a.Rank() != b.Rank() {
		return false
	}
	return !s.cfg.ColorSensitive || a.Suit().Color() == b.Suit().Color()
}

// revertMismatch turns both cards of the pending mismatch face-down.
func (s *Session) revertMismatch(turn uint64) Outcome {
	if s.phase != PhaseShowingMismatch || turn != s.turn {
		s.log.Debug().Uint64("turn", turn).Uint64("current", s.turn).Msg("stale revert dropped")
		return OutcomeIgnored
	}
	s.revert = nil
	for _, c := range []*deck.Card{s.first, s.second} {
		s.flip(c, deck.FaceDown)
	}
	s.first, s.second = nil, nil
	s.phase = PhaseEmpty
	return OutcomeReverted
}

func (s *Session) complete() {
	s.phase = PhaseComplete
	s.end = s.clk.Now()
	s.stopTick()
	s.win = s.clk.AfterFunc(WinDelay, func() { s.dispatch(WinDue{}) })
	s.log.Info().Dur("elapsed", s.Elapsed()).Msg("all pairs found")
}

func (s *Session) announceWin() Outcome {
	if s.phase != PhaseComplete || s.win == nil {
		return OutcomeIgnored
	}
	s.win = nil
	s.present.Won()
	return OutcomeWon
}

func (s *Session) onTick() Outcome {
	if s.tick == nil {
		return OutcomeIgnored
	}
	s.present.ElapsedTick(s.ElapsedSeconds())
	return OutcomeTicked
}

func (s *Session) flip(c *deck.Card, face deck.Face) {
	if face == deck.FaceUp {
		c.FaceUp()
	} else {
		c.FaceDown()
	}
	s.render.Render(c, face, c.Position())
}

func (s *Session) stopTick() {
	if s.tick != nil {
		s.tick.Stop()
		s.tick = nil
	}
}

// retire cancels every pending timer. The session ignores all later events.
func (s *Session) retire() {
	if s.retired {
		return
	}
	s.stopTick()
	if s.revert != nil {
		s.revert.Stop()
		s.revert = nil
	}
	if s.win != nil {
		s.win.Stop()
		s.win = nil
	}
	s.retired = true
	s.log.Debug().Msg("session retired")
}
