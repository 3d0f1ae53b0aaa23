package app

import "euchre/internal/domain"

// ActionType enumerates every transition the state machine accepts. The
// service's dispatch switch is exhaustive over these values; an unlisted type
// is rejected, never silently ignored.
type ActionType int

const (
	ActionStartGame ActionType = iota
	ActionDeal
	ActionPass
	ActionSetTrump
	ActionPlayCard
	ActionClearTrick
	ActionToggleLearningMode
	ActionCpuPlay
)

func (t ActionType) String() string {
	switch t {
	case ActionStartGame:
		return "start_game"
	case ActionDeal:
		return "deal"
	case ActionPass:
		return "pass"
	case ActionSetTrump:
		return "set_trump"
	case ActionPlayCard:
		return "play_card"
	case ActionClearTrick:
		return "clear_trick"
	case ActionToggleLearningMode:
		return "toggle_learning_mode"
	case ActionCpuPlay:
		return "cpu_play"
	default:
		return "unknown"
	}
}

// Action is one request against the state machine. Seat is the acting seat
// for player actions; system actions (deal, clear, cpu play) ignore it.
type Action struct {
	Type  ActionType
	Seat  int
	Suit  domain.Suit
	Alone bool
	Card  domain.Card
}

// StartGame resets the table and begins a fresh game.
func StartGame() Action {
	return Action{Type: ActionStartGame}
}

// Deal shuffles and deals the next hand.
func Deal() Action {
	return Action{Type: ActionDeal}
}

// Pass declines to call trump.
func Pass(seat int) Action {
	return Action{Type: ActionPass, Seat: seat}
}

// SetTrump calls trump for the hand, optionally going alone.
func SetTrump(seat int, suit domain.Suit, alone bool) Action {
	return Action{Type: ActionSetTrump, Seat: seat, Suit: suit, Alone: alone}
}

// PlayCard plays a card from the seat's hand into the trick.
func PlayCard(seat int, card domain.Card) Action {
	return Action{Type: ActionPlayCard, Seat: seat, Card: card}
}

// ClearTrick acknowledges a resolved trick and continues the hand.
func ClearTrick() Action {
	return Action{Type: ActionClearTrick}
}

// ToggleLearningMode flips the UI hint preference.
func ToggleLearningMode() Action {
	return Action{Type: ActionToggleLearningMode}
}

// CpuPlay lets the current CPU seat take its turn.
func CpuPlay() Action {
	return Action{Type: ActionCpuPlay}
}
