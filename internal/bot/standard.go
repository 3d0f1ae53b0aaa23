package bot

import (
	"errors"
	"fmt"

	"euchre/internal/domain"
)

// StandardBrain is the default CPU strategy: a weighted-count bidding scorer
// and a positional trick heuristic.
type StandardBrain struct {
	Tuning Tuning
}

var errNoTrump = errors.New("no trump set")

// ChooseBid scores every candidate trump suit against the seat's hand and
// calls when the best score clears the call threshold. A dealer facing three
// passes has no choice and calls the best suit regardless, falling back to the
// longest raw suit when nothing scored; a forced call never goes alone.
func (b *StandardBrain) ChooseBid(game *domain.Game, seat int) BidDecision {
	hand := game.Players[seat].Hand
	tuning := b.Tuning

	bestSuit := domain.SuitClubs
	bestScore := -1
	for _, candidate := range domain.Suits() {
		score := bidScore(hand, candidate, tuning)
		if score > bestScore {
			bestScore = score
			bestSuit = candidate
		}
	}

	forced := seat == game.Dealer && game.PassCount >= domain.NumSeats-1
	if forced {
		if bestScore <= 0 {
			bestSuit = longestSuit(hand)
		}
		return BidDecision{Call: true, Suit: bestSuit}
	}

	if bestScore >= tuning.CallThreshold {
		return BidDecision{
			Call:  true,
			Suit:  bestSuit,
			Alone: bestScore >= tuning.AloneThreshold,
		}
	}
	return BidDecision{}
}

func bidScore(hand []domain.Card, candidate domain.Suit, tuning Tuning) int {
	score := 0
	for _, c := range hand {
		if domain.EffectiveSuit(c, candidate) == candidate {
			score += tuning.TrumpCardBase + domain.RankValue(c, candidate)/tuning.StrengthDivisor
			if c.Rank == domain.RankJ {
				if c.Suit == candidate {
					score += tuning.RightBowerBonus
				} else {
					score += tuning.LeftBowerBonus
				}
			}
		} else if c.Rank == domain.RankA {
			score += tuning.OffSuitAceBonus
		}
	}
	return score
}

// longestSuit returns the suit the hand holds the most raw cards of, ties to
// enumeration order.
func longestSuit(hand []domain.Card) domain.Suit {
	var counts [4]int
	for _, c := range hand {
		counts[c.Suit]++
	}
	best := domain.SuitClubs
	for _, s := range domain.Suits() {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}

// ChooseCard picks the seat's play under the hand's trump.
func (b *StandardBrain) ChooseCard(game *domain.Game, seat int) (domain.Card, error) {
	if game.Trump == nil {
		return domain.Card{}, errNoTrump
	}
	trump := *game.Trump
	hand := game.Players[seat].Hand
	if len(hand) == 0 {
		return domain.Card{}, fmt.Errorf("seat %d has no cards", seat)
	}

	if len(game.Trick) == 0 {
		return b.chooseLead(hand, trump), nil
	}
	return b.chooseFollow(game, seat, hand, trump)
}

// chooseLead opens a trick: bowers first, then remaining trump, then a short
// off-suit ace, then off-suit kings and queens, then the strongest card left.
func (b *StandardBrain) chooseLead(hand []domain.Card, trump domain.Suit) domain.Card {
	if c, ok := findRank(hand, trump, 18); ok {
		return c
	}
	if c, ok := findRank(hand, trump, 17); ok {
		return c
	}
	if c, ok := highestTrump(hand, trump); ok {
		return c
	}
	if c, ok := shortestOffAce(hand, trump); ok {
		return c
	}
	if c, ok := highestOffCourt(hand, trump); ok {
		return c
	}
	return highestCard(hand, trump)
}

func (b *StandardBrain) chooseFollow(game *domain.Game, seat int, hand []domain.Card, trump domain.Suit) (domain.Card, error) {
	winIdx, err := domain.TrickWinner(game.Trick, trump)
	if err != nil {
		return domain.Card{}, err
	}
	winSeat := domain.SeatForTrickIndex(game.TrickLeader, winIdx, game.SittingOutSeat())
	winValue := domain.RankValue(game.Trick[winIdx], trump)
	lead := domain.EffectiveSuit(game.Trick[0], trump)

	legal := legalCards(hand, game.Trick, trump)

	// With the partnership already winning and little left to act, shed the
	// cheapest card rather than overtake a partner.
	nearLast := len(game.Trick) >= game.ActiveSeatCount()-2
	if winSeat == domain.PartnerSeat(seat) && nearLast {
		return lowestCard(legal, trump), nil
	}

	follows := cardsOfEffectiveSuit(hand, lead, trump)
	if len(follows) > 0 {
		if c, ok := cheapestAbove(follows, trump, winValue); ok {
			return c, nil
		}
		return lowestCard(follows, trump), nil
	}

	trumps := cardsOfEffectiveSuit(hand, trump, trump)
	if len(trumps) > 0 {
		if c, ok := cheapestAbove(trumps, trump, winValue); ok {
			return c, nil
		}
		if c, ok := lowestNonTrump(hand, trump); ok {
			return c, nil
		}
		return lowestCard(trumps, trump), nil
	}

	return lowestCard(legal, trump), nil
}

func legalCards(hand []domain.Card, trick []domain.Card, trump domain.Suit) []domain.Card {
	out := make([]domain.Card, 0, len(hand))
	for _, c := range hand {
		if domain.IsValidPlay(c, hand, trick, trump) {
			out = append(out, c)
		}
	}
	return out
}

func cardsOfEffectiveSuit(hand []domain.Card, suit, trump domain.Suit) []domain.Card {
	out := []domain.Card{}
	for _, c := range hand {
		if domain.EffectiveSuit(c, trump) == suit {
			out = append(out, c)
		}
	}
	return out
}

func findRank(hand []domain.Card, trump domain.Suit, value int) (domain.Card, bool) {
	for _, c := range hand {
		if domain.RankValue(c, trump) == value {
			return c, true
		}
	}
	return domain.Card{}, false
}

func highestTrump(hand []domain.Card, trump domain.Suit) (domain.Card, bool) {
	var best domain.Card
	found := false
	for _, c := range hand {
		if !domain.IsTrump(c, trump) {
			continue
		}
		if !found || domain.RankValue(c, trump) > domain.RankValue(best, trump) {
			best = c
			found = true
		}
	}
	return best, found
}

// shortestOffAce picks an off-suit ace, preferring the suit the hand holds the
// fewest cards of so short suits empty out first.
func shortestOffAce(hand []domain.Card, trump domain.Suit) (domain.Card, bool) {
	var best domain.Card
	bestCount := -1
	for _, c := range hand {
		if c.Rank != domain.RankA || domain.IsTrump(c, trump) {
			continue
		}
		count := len(cardsOfEffectiveSuit(hand, c.Suit, trump))
		if bestCount == -1 || count < bestCount {
			best = c
			bestCount = count
		}
	}
	return best, bestCount != -1
}

func highestOffCourt(hand []domain.Card, trump domain.Suit) (domain.Card, bool) {
	var best domain.Card
	found := false
	for _, c := range hand {
		if domain.IsTrump(c, trump) {
			continue
		}
		if c.Rank != domain.RankK && c.Rank != domain.RankQ {
			continue
		}
		if !found || domain.RankValue(c, trump) > domain.RankValue(best, trump) {
			best = c
			found = true
		}
	}
	return best, found
}

func highestCard(hand []domain.Card, trump domain.Suit) domain.Card {
	best := hand[0]
	for _, c := range hand[1:] {
		if domain.RankValue(c, trump) > domain.RankValue(best, trump) {
			best = c
		}
	}
	return best
}

func lowestCard(cards []domain.Card, trump domain.Suit) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if domain.RankValue(c, trump) < domain.RankValue(best, trump) {
			best = c
		}
	}
	return best
}

func cheapestAbove(cards []domain.Card, trump domain.Suit, value int) (domain.Card, bool) {
	var best domain.Card
	found := false
	for _, c := range cards {
		v := domain.RankValue(c, trump)
		if v <= value {
			continue
		}
		if !found || v < domain.RankValue(best, trump) {
			best = c
			found = true
		}
	}
	return best, found
}

func lowestNonTrump(hand []domain.Card, trump domain.Suit) (domain.Card, bool) {
	var best domain.Card
	found := false
	for _, c := range hand {
		if domain.IsTrump(c, trump) {
			continue
		}
		if !found || domain.RankValue(c, trump) < domain.RankValue(best, trump) {
			best = c
			found = true
		}
	}
	return best, found
}
