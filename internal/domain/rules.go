package domain

import "errors"

// ErrEmptyTrick is reported when trick resolution is asked for an empty trick.
// No legal game state produces this; it is a contract violation.
var ErrEmptyTrick = errors.New("cannot resolve an empty trick")

// IsValidPlay reports whether playing card from hand into the trick is legal
// under the given trump. Leading any card is legal. A follower must match the
// lead's effective suit whenever the hand can, bower-aware: the left bower
// follows trump, not its printed suit.
func IsValidPlay(card Card, hand []Card, trick []Card, trump Suit) bool {
	if len(trick) == 0 {
		return true
	}
	lead := EffectiveSuit(trick[0], trump)
	if EffectiveSuit(card, trump) == lead {
		return true
	}
	return !HasEffectiveSuit(hand, lead, trump)
}

// HasEffectiveSuit reports whether any card in the hand plays as the given
// suit under trump.
func HasEffectiveSuit(hand []Card, suit Suit, trump Suit) bool {
	for _, c := range hand {
		if EffectiveSuit(c, trump) == suit {
			return true
		}
	}
	return false
}

// TrickWinner returns the trick-local index of the winning card. Only cards
// that play as trump or as the lead's effective suit contend; among those the
// greatest RankValue wins. Ties are impossible within a single trick.
func TrickWinner(trick []Card, trump Suit) (int, error) {
	if len(trick) == 0 {
		return -1, ErrEmptyTrick
	}
	lead := EffectiveSuit(trick[0], trump)
	best := 0
	for i := 1; i < len(trick); i++ {
		es := EffectiveSuit(trick[i], trump)
		if es != trump && es != lead {
			continue
		}
		if RankValue(trick[i], trump) > RankValue(trick[best], trump) {
			best = i
		}
	}
	return best, nil
}

// NextSeat returns the seat to the left of the given seat, skipping the
// sitting-out seat. Pass sittingOut < 0 when every seat is active.
func NextSeat(seat, sittingOut int) int {
	next := (seat + 1) % NumSeats
	if next == sittingOut {
		next = (next + 1) % NumSeats
	}
	return next
}

// SeatForTrickIndex maps a trick-local card index back to the absolute seat
// that played it, given the seat that led the trick and the sitting-out seat
// (or -1 when all four seats played).
func SeatForTrickIndex(leader, index, sittingOut int) int {
	seat := leader
	if seat == sittingOut {
		seat = NextSeat(seat, sittingOut)
	}
	for i := 0; i < index; i++ {
		seat = NextSeat(seat, sittingOut)
	}
	return seat
}

// HandContains reports whether the hand holds the exact card.
func HandContains(hand []Card, card Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}

// RemoveCard removes one occurrence of card from the hand, reporting whether
// it was present.
func RemoveCard(hand *[]Card, card Card) bool {
	for i, c := range *hand {
		if c == card {
			*hand = append((*hand)[:i], (*hand)[i+1:]...)
			return true
		}
	}
	return false
}
