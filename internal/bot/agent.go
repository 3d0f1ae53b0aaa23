package bot

import "euchre/internal/domain"

// Agent is an autonomous CPU player bound to one strategy.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Bid asks the agent for its bidding decision at the given seat.
func (a *Agent) Bid(game *domain.Game, seat int) BidDecision {
	return a.Strategy.ChooseBid(game, seat)
}

// Play asks the agent for its card at the given seat.
func (a *Agent) Play(game *domain.Game, seat int) (domain.Card, error) {
	return a.Strategy.ChooseCard(game, seat)
}
