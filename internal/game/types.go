// internal/game/types.go
//
// Core type definitions for the pairs game engine.
// Defines:
//   - Phase: the matching state machine's states.
//   - Outcome: what a single event did to a session.
//   - Event: the explicit messages fed into a session's transition function.
//   - Renderer / Presenter: the collaborators the engine drives.

package game

import (
	"errors"
	"time"

	"github.com/robalobadob/pairs/internal/deck"
)

const (
	// MismatchDelay is how long a non-matching pair stays visible.
	MismatchDelay = 1000 * time.Millisecond
	// WinDelay lets the final flip show before the win signal.
	WinDelay = 300 * time.Millisecond
	// TickInterval is the elapsed-time display period.
	TickInterval = 970 * time.Millisecond
)

// Board geometry in pixels. Each grid cell is a card plus its border and
// drop shadow.
const (
	CardWidthPx  = 100
	CardHeightPx = 140
	BorderPx     = 1
	ShadowPx     = 2
	GridWidthPx  = CardWidthPx + BorderPx + ShadowPx
	GridHeightPx = CardHeightPx + BorderPx + ShadowPx
)

var (
	// ErrNoSession is returned when a table has no active session.
	ErrNoSession = errors.New("no active session")
	// ErrStaleSession is returned for events addressed to a superseded session.
	ErrStaleSession = errors.New("session is no longer active")
	// ErrUnknownSlot is returned for a click outside the board.
	ErrUnknownSlot = errors.New("unknown board slot")
)

// Phase is the state of a session's matching state machine.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseOneSelected
	PhaseShowingMismatch
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseOneSelected:
		return "one_selected"
	case PhaseShowingMismatch:
		return "showing_mismatch"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Outcome reports what an event did.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeSelected
	OutcomeMatched
	OutcomeMismatched
	OutcomeCompleted
	OutcomeReverted
	OutcomeWon
	OutcomeTicked
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeSelected:
		return "selected"
	case OutcomeMatched:
		return "matched"
	case OutcomeMismatched:
		return "mismatched"
	case OutcomeCompleted:
		return "completed"
	case OutcomeReverted:
		return "reverted"
	case OutcomeWon:
		return "won"
	case OutcomeTicked:
		return "ticked"
	default:
		return "unknown"
	}
}

// Event is a message for a session's transition function.
type Event interface{ event() }

// Click is a player's click on the card at Slot.
type Click struct{ Slot int }

// RevertDue fires when the mismatch of turn Turn has been shown long enough.
type RevertDue struct{ Turn uint64 }

// WinDue fires WinDelay after the last pair was found.
type WinDue struct{}

// Tick is the periodic elapsed-time tick.
type Tick struct{}

func (Click) event()     {}
func (RevertDue) event() {}
func (WinDue) event()    {}
func (Tick) event()      {}

// Renderer draws cards. The engine calls it, it never implements drawing.
type Renderer interface {
	Render(c *deck.Card, face deck.Face, pos deck.Position)
	Resize(widthPx, heightPx int)
}

// Presenter receives the session-level signals shown to the player.
type Presenter interface {
	ElapsedTick(seconds int)
	Won()
	ConfigError(message string)
}

type nopRenderer struct{}

func (nopRenderer) Render(*deck.Card, deck.Face, deck.Position) {}
func (nopRenderer) Resize(int, int)                              {}

type nopPresenter struct{}

func (nopPresenter) ElapsedTick(int)    {}
func (nopPresenter) Won()               {}
func (nopPresenter) ConfigError(string) {}
