package domain

import "errors"

const (
	// DeckSize is the number of cards in a euchre deck.
	DeckSize = 24
	// HandSize is the number of cards dealt to each seat.
	HandSize = 5
	// NumSeats is the number of seats at the table.
	NumSeats = 4
)

// ErrDeckTooSmall is reported when a deal is attempted from fewer cards than
// four full hands require.
var ErrDeckTooSmall = errors.New("deck too small to deal four hands")

// NewDeck returns the ordered 24-card euchre deck, every suit and rank
// combination exactly once.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits() {
		for _, r := range Ranks() {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Deal splits a shuffled deck into four hands of five and the kitty. Hands are
// dealt in per-player blocks off the top. The deck must hold at least the 20
// cards the hands require; anything short is signalled, never padded.
func Deal(deck []Card) ([NumSeats][]Card, []Card, error) {
	var hands [NumSeats][]Card
	if len(deck) < HandSize*NumSeats {
		return hands, nil, ErrDeckTooSmall
	}

	idx := 0
	for seat := 0; seat < NumSeats; seat++ {
		hands[seat] = append([]Card(nil), deck[idx:idx+HandSize]...)
		idx += HandSize
	}
	kitty := append([]Card(nil), deck[idx:]...)
	return hands, kitty, nil
}
