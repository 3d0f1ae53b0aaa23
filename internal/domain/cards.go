package domain

import "fmt"

// Suit is one of the four card suits.
type Suit int

const (
	SuitClubs Suit = iota
	SuitDiamonds
	SuitHearts
	SuitSpades
)

// Rank is one of the six euchre ranks. The declaration order is the base
// ordering 9 < 10 < J < Q < K < A, so int(rank) is the base rank index.
type Rank int

const (
	Rank9 Rank = iota
	Rank10
	RankJ
	RankQ
	RankK
	RankA
)

func (s Suit) String() string {
	switch s {
	case SuitClubs:
		return "C"
	case SuitDiamonds:
		return "D"
	case SuitHearts:
		return "H"
	case SuitSpades:
		return "S"
	default:
		return "?"
	}
}

func (r Rank) String() string {
	switch r {
	case Rank9:
		return "9"
	case Rank10:
		return "10"
	case RankJ:
		return "J"
	case RankQ:
		return "Q"
	case RankK:
		return "K"
	case RankA:
		return "A"
	default:
		return "?"
	}
}

// Card is a single playing card. Suit+Rank is a unique identity; a deck never
// holds duplicates.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank.String(), c.Suit.String())
}

// LeftBowerSuit returns the suit whose jack plays as trump alongside the named
// trump suit: hearts pairs with diamonds, spades with clubs. An out-of-range
// suit is a programming error and is reported loudly.
func LeftBowerSuit(trump Suit) (Suit, error) {
	switch trump {
	case SuitHearts:
		return SuitDiamonds, nil
	case SuitDiamonds:
		return SuitHearts, nil
	case SuitSpades:
		return SuitClubs, nil
	case SuitClubs:
		return SuitSpades, nil
	default:
		return 0, fmt.Errorf("invalid trump suit %d", int(trump))
	}
}

// EffectiveSuit returns the suit a card plays as under the given trump. The
// left bower counts as a trump card; every other card keeps its printed suit.
func EffectiveSuit(c Card, trump Suit) Suit {
	if c.Rank == RankJ {
		if lb, err := LeftBowerSuit(trump); err == nil && c.Suit == lb {
			return trump
		}
	}
	return c.Suit
}

// IsTrump reports whether the card plays as trump, bower-aware.
func IsTrump(c Card, trump Suit) bool {
	return EffectiveSuit(c, trump) == trump
}

// RankValue is the total order used for every card comparison during a hand:
// right bower 18, left bower 17, remaining trump 11..16, everything else 5..10.
// Values never collide within one trick because card identities are unique.
func RankValue(c Card, trump Suit) int {
	if c.Rank == RankJ {
		if c.Suit == trump {
			return 18
		}
		if lb, err := LeftBowerSuit(trump); err == nil && c.Suit == lb {
			return 17
		}
	}
	if c.Suit == trump {
		return int(c.Rank) + 11
	}
	return int(c.Rank) + 5
}

// Suits lists all suits in enumeration order.
func Suits() [4]Suit {
	return [4]Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}
}

// Ranks lists all ranks in base order.
func Ranks() [6]Rank {
	return [6]Rank{Rank9, Rank10, RankJ, RankQ, RankK, RankA}
}
