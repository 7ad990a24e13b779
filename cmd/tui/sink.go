package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/pairs/internal/deck"
)

// Messages posted by the engine to the program.
type (
	boardChangedMsg struct{}
	elapsedMsg      struct{ seconds int }
	wonMsg          struct{}
	configErrorMsg  struct{ message string }
)

// sink adapts engine callbacks into tea messages. The engine calls it while
// holding the table lock, often from inside Update, so sends never block.
// Board and tick updates may be dropped when the buffer is full: the next
// snapshot or tick supersedes them. One-shot signals are always delivered.
type sink chan tea.Msg

func (s sink) post(msg tea.Msg) {
	select {
	case s <- msg:
	default:
	}
}

// deliver hands msg off without blocking and without dropping it.
func (s sink) deliver(msg tea.Msg) {
	select {
	case s <- msg:
	default:
		go func() { s <- msg }()
	}
}

func (s sink) Render(*deck.Card, deck.Face, deck.Position) { s.post(boardChangedMsg{}) }
func (s sink) Resize(int, int)                              { s.post(boardChangedMsg{}) }
func (s sink) ElapsedTick(seconds int)                      { s.post(elapsedMsg{seconds: seconds}) }
func (s sink) Won()                                         { s.deliver(wonMsg{}) }
func (s sink) ConfigError(message string)                   { s.deliver(configErrorMsg{message: message}) }

// waitForSignal delivers the next engine message to Update.
func waitForSignal(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return <-ch }
}
