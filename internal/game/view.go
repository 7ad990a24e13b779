package game

import (
	"github.com/google/uuid"

	"github.com/robalobadob/pairs/internal/deck"
)

// CardView is the client-facing representation of a card.
// Rank and suit are only included while the card is face-up.
type CardView struct {
	Slot  int    `json:"slot"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Face  string `json:"face"`
	Rank  string `json:"rank,omitempty"`
	Suit  string `json:"suit,omitempty"`
	Color string `json:"color,omitempty"`
	Label string `json:"label,omitempty"`
}

// View is a snapshot of a session for clients.
type View struct {
	SessionID      uuid.UUID  `json:"sessionId"`
	Columns        int        `json:"columns"`
	Rows           int        `json:"rows"`
	WidthPx        int        `json:"widthPx"`
	HeightPx       int        `json:"heightPx"`
	ColorSensitive bool       `json:"colorSensitive"`
	Phase          string     `json:"phase"`
	PairsRemaining int        `json:"pairsRemaining"`
	ElapsedSeconds int        `json:"elapsedSeconds"`
	Cards          []CardView `json:"cards"`
}

// NewCardView builds the view of c showing face.
func NewCardView(c *deck.Card, face deck.Face) CardView {
	cv := CardView{
		Slot: c.Slot(),
		Row:  c.Position().Row,
		Col:  c.Position().Col,
		Face: face.String(),
	}
	if face == deck.FaceUp {
		cv.Rank = c.Rank().String()
		cv.Suit = c.Suit().String()
		cv.Color = c.Suit().Color().String()
		cv.Label = c.Label()
	}
	return cv
}

func (s *Session) view() View {
	cards := make([]CardView, len(s.cards))
	for i, c := range s.cards {
		cards[i] = NewCardView(c, c.Face())
	}
	return View{
		SessionID:      s.id,
		Columns:        s.cfg.Columns,
		Rows:           s.cfg.Rows(),
		WidthPx:        GridWidthPx * s.cfg.Columns,
		HeightPx:       GridHeightPx * s.cfg.Rows(),
		ColorSensitive: s.cfg.ColorSensitive,
		Phase:          s.phase.String(),
		PairsRemaining: s.pairsRemaining,
		ElapsedSeconds: s.ElapsedSeconds(),
		Cards:          cards,
	}
}
