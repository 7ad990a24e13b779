// internal/deck/card.go
//
// Card identity and face state.
// Defines:
//   - Suit: one of four fixed suits, each tagged black or red.
//   - Rank: 1 (ace) .. 13 (king).
//   - Face: down/up.
//   - Card: immutable identity + board slot, mutable face.

package deck

import "fmt"

// Suit is one of the four fixed suits. Order matters: the deck builder
// assigns suit = i mod 4.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the number of suits, and therefore the number of cards per rank.
const NumSuits = 4

// Color tags a suit as black or red.
type Color int

const (
	Black Color = iota
	Red
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

var suitSymbols = [NumSuits]string{"♣", "♦", "♥", "♠"}
var suitNames = [NumSuits]string{"clubs", "diamonds", "hearts", "spades"}
var suitColors = [NumSuits]Color{Black, Red, Red, Black}

// Color reports the suit colour used by colour-sensitive matching.
func (s Suit) Color() Color { return suitColors[s] }

// Symbol returns the unicode glyph for the suit.
func (s Suit) Symbol() string { return suitSymbols[s] }

func (s Suit) String() string {
	if s < 0 || int(s) >= NumSuits {
		return "invalid"
	}
	return suitNames[s]
}

// Rank is a card value, 1 (ace) through 13 (king).
type Rank int

var rankLabels = [...]string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

func (r Rank) String() string {
	if r < 1 || int(r) >= len(rankLabels) {
		return "?"
	}
	return rankLabels[r]
}

// Face is the visible side of a card.
type Face int

const (
	FaceDown Face = iota
	FaceUp
)

func (f Face) String() string {
	if f == FaceUp {
		return "up"
	}
	return "down"
}

// Position is a grid cell on the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Card is a single card dealt for one session. Rank, suit, slot and
// position are fixed at deal time; only the face changes.
type Card struct {
	rank Rank
	suit Suit
	slot int
	pos  Position
	face Face
}

func (c *Card) Rank() Rank         { return c.rank }
func (c *Card) Suit() Suit         { return c.suit }
func (c *Card) Slot() int          { return c.slot }
func (c *Card) Position() Position { return c.pos }
func (c *Card) Face() Face         { return c.face }

// IsUp reports whether the card is showing its face.
func (c *Card) IsUp() bool { return c.face == FaceUp }

// FaceUp turns the card face-up.
func (c *Card) FaceUp() { c.face = FaceUp }

// FaceDown turns the card face-down.
func (c *Card) FaceDown() { c.face = FaceDown }

// Label is the short face text, e.g. "♥10".
func (c *Card) Label() string { return c.suit.Symbol() + c.rank.String() }

func (c *Card) String() string {
	return fmt.Sprintf("%s@%d(%d,%d)", c.Label(), c.slot, c.pos.Row, c.pos.Col)
}
