// internal/deck/deck.go
//
// Deck construction for one session.
//
// Identities are assigned sequentially (rank = i/4 + 1, suit = i mod 4) and an
// independently shuffled slot permutation decides where each identity sits on
// the board. Identity order and slot order stay decoupled.

package deck

import (
	"errors"
	"fmt"
)

// MaxRank is the highest rank (king).
const MaxRank = 13

var (
	// ErrRankRange is returned for a rank ceiling outside 1..MaxRank.
	ErrRankRange = errors.New("deck: max rank out of range")
	// ErrColumns is returned for a non-positive column count.
	ErrColumns = errors.New("deck: columns must be positive")
)

// Size returns the number of cards dealt for maxRank.
func Size(maxRank int) int { return NumSuits * maxRank }

// Rows returns the number of board rows needed for n cards in columns.
func Rows(n, columns int) int {
	if columns <= 0 {
		return 0
	}
	return (n + columns - 1) / columns
}

// Build deals 4*maxRank face-down cards laid out over columns. The returned
// slice is indexed by board slot.
func Build(maxRank, columns int, r Rand) ([]*Card, error) {
	if maxRank < 1 || maxRank > MaxRank {
		return nil, fmt.Errorf("%w: %d", ErrRankRange, maxRank)
	}
	if columns <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrColumns, columns)
	}

	n := Size(maxRank)
	slots := Perm(n, r)
	cards := make([]*Card, n)
	for i, slot := range slots {
		cards[slot] = &Card{
			rank: Rank(i/NumSuits + 1),
			suit: Suit(i % NumSuits),
			slot: slot,
			pos:  Position{Row: slot / columns, Col: slot % columns},
			face: FaceDown,
		}
	}
	return cards, nil
}
