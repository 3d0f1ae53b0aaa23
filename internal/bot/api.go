package bot

import "euchre/internal/domain"

// BidDecision is the outcome of a bidding turn.
type BidDecision struct {
	Call  bool
	Suit  domain.Suit
	Alone bool
}

// Brain is the interface every CPU strategy implements.
type Brain interface {
	// ChooseBid decides whether to call trump for the given seat. When the
	// seat is the dealer and three passes have come before, the decision must
	// be a call.
	ChooseBid(game *domain.Game, seat int) BidDecision

	// ChooseCard picks a legal card for the given seat to play into the
	// current trick.
	ChooseCard(game *domain.Game, seat int) (domain.Card, error)
}

// Level selects a strategy strength.
type Level int

const (
	LevelRookie Level = iota
	LevelStandard
)

// LevelFromDifficulty maps an identity difficulty string onto a Level.
func LevelFromDifficulty(difficulty string) Level {
	switch difficulty {
	case "easy":
		return LevelRookie
	default:
		return LevelStandard
	}
}
