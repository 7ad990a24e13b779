// internal/httpserver/feed.go
//
// Fan-out of engine callbacks to Server-Sent Events streams.
//
// Each player's table is built with a renderer and presenter that publish
// to that player's subscribers. Publishing happens under the table lock,
// so sends never block: a subscriber that falls behind loses events and
// can resynchronise from GET /game/state.

package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pairs/internal/clock"
	"github.com/robalobadob/pairs/internal/deck"
	"github.com/robalobadob/pairs/internal/game"
	"github.com/robalobadob/pairs/internal/store"
)

// subscriberBuffer is how many events a slow stream may lag behind.
const subscriberBuffer = 64

// Event is one SSE message.
type Event struct {
	Name string
	Data any
}

// write encodes ev in text/event-stream framing.
func (ev Event) write(w io.Writer) error {
	b, err := json.Marshal(ev.Data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, b)
	return err
}

// Feed routes events to the streams of each player.
type Feed struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe registers a stream for playerID. The returned func unregisters it.
func (f *Feed) Subscribe(playerID string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	f.mu.Lock()
	if f.subs[playerID] == nil {
		f.subs[playerID] = make(map[chan Event]struct{})
	}
	f.subs[playerID][ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs[playerID], ch)
			if len(f.subs[playerID]) == 0 {
				delete(f.subs, playerID)
			}
			f.mu.Unlock()
		})
	}
}

// Publish delivers ev to every stream of playerID without blocking.
func (f *Feed) Publish(playerID string, ev Event) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for ch := range f.subs[playerID] {
		select {
		case ch <- ev:
		default:
			log.Debug().Str("player", playerID).Str("event", ev.Name).Msg("slow subscriber, event dropped")
		}
	}
}

// Tables returns a store.Factory whose tables publish to this feed.
func (f *Feed) Tables(clk clock.Clock) store.Factory {
	return func(playerID string) *game.Table {
		p := playerSink{feed: f, player: playerID}
		return game.NewTable(clk,
			game.WithRenderer(p),
			game.WithPresenter(p),
			game.WithLogger(log.With().Str("player", playerID).Logger()),
		)
	}
}

// playerSink implements game.Renderer and game.Presenter for one player.
type playerSink struct {
	feed   *Feed
	player string
}

type resizeMsg struct {
	WidthPx  int `json:"widthPx"`
	HeightPx int `json:"heightPx"`
}

type tickMsg struct {
	Seconds int `json:"seconds"`
}

type errorMsg struct {
	Error string `json:"error"`
}

func (p playerSink) Render(c *deck.Card, face deck.Face, _ deck.Position) {
	p.feed.Publish(p.player, Event{Name: "render", Data: game.NewCardView(c, face)})
}

func (p playerSink) Resize(w, h int) {
	p.feed.Publish(p.player, Event{Name: "resize", Data: resizeMsg{WidthPx: w, HeightPx: h}})
}

func (p playerSink) ElapsedTick(seconds int) {
	p.feed.Publish(p.player, Event{Name: "tick", Data: tickMsg{Seconds: seconds}})
}

func (p playerSink) Won() {
	p.feed.Publish(p.player, Event{Name: "win", Data: struct{}{}})
}

func (p playerSink) ConfigError(msg string) {
	p.feed.Publish(p.player, Event{Name: "config_error", Data: errorMsg{Error: msg}})
}
