// Package engine implements the solitaire rules engines (FreeCell and
// Klondike).
//
// Game states are flat value types: every transition copies the whole
// struct and returns a new one, so a caller's state is never mutated in
// place. The package has no dependencies and performs no I/O; callers
// own persistence and presentation.
package engine

import "fmt"

// Suit constants — packed into upper 4 bits of Card.
const (
	SuitHearts   uint8 = 0
	SuitDiamonds uint8 = 1
	SuitClubs    uint8 = 2
	SuitSpades   uint8 = 3

	NumSuits = 4
)

// Rank constants — packed into lower 4 bits of Card. Aces are low.
const (
	RankAce   uint8 = 1
	RankTwo   uint8 = 2
	RankThree uint8 = 3
	RankFour  uint8 = 4
	RankFive  uint8 = 5
	RankSix   uint8 = 6
	RankSeven uint8 = 7
	RankEight uint8 = 8
	RankNine  uint8 = 9
	RankTen   uint8 = 10
	RankJack  uint8 = 11
	RankQueen uint8 = 12
	RankKing  uint8 = 13
)

// DeckSize is the standard deck size. Solitaire variants here never use
// jokers.
const DeckSize = 52

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
// The byte value doubles as the card's stable identifier; it is used
// for equality and set membership, never for ordering.
type Card uint8

// EmptyCard represents the absence of a card (vacant cell, empty pile).
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit (0-3) and rank (1-13).
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// Color of a card: hearts and diamonds are red, clubs and spades black.
type Color uint8

const (
	ColorRed   Color = 0
	ColorBlack Color = 1
)

// Color returns the card's color.
func (c Card) Color() Color {
	if s := c.Suit(); s == SuitHearts || s == SuitDiamonds {
		return ColorRed
	}
	return ColorBlack
}

// IsValid reports whether c encodes a real card from a standard deck.
func (c Card) IsValid() bool {
	return c.Suit() < NumSuits && c.Rank() >= RankAce && c.Rank() <= RankKing
}

var suitGlyphs = [NumSuits]string{"♥", "♦", "♣", "♠"}
var rankNames = [14]string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// String renders the card as rank+suit, e.g. "7♥" or "K♠".
func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	if !c.IsValid() {
		return fmt.Sprintf("?%02x", uint8(c))
	}
	return rankNames[c.Rank()] + suitGlyphs[c.Suit()]
}

// SameSuit reports whether two cards share a suit.
func SameSuit(a, b Card) bool { return a.Suit() == b.Suit() }

// SameColor reports whether two cards share a color.
func SameColor(a, b Card) bool { return a.Color() == b.Color() }

// AlternatesColor reports whether two cards have opposite colors.
func AlternatesColor(a, b Card) bool { return a.Color() != b.Color() }
