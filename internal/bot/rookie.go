package bot

import (
	"fmt"
	"math/rand"

	"euchre/internal/domain"
)

// RookieBrain plays uniformly random legal cards and only calls trump when
// forced. It exists to fill easy-difficulty seats.
type RookieBrain struct {
	RNG *rand.Rand
}

func (b *RookieBrain) ChooseBid(game *domain.Game, seat int) BidDecision {
	if seat == game.Dealer && game.PassCount >= domain.NumSeats-1 {
		return BidDecision{Call: true, Suit: longestSuit(game.Players[seat].Hand)}
	}
	return BidDecision{}
}

func (b *RookieBrain) ChooseCard(game *domain.Game, seat int) (domain.Card, error) {
	if game.Trump == nil {
		return domain.Card{}, errNoTrump
	}
	hand := game.Players[seat].Hand
	legal := legalCards(hand, game.Trick, *game.Trump)
	if len(legal) == 0 {
		return domain.Card{}, fmt.Errorf("seat %d has no legal play", seat)
	}
	return legal[b.RNG.Intn(len(legal))], nil
}
