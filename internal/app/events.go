package app

import "euchre/internal/domain"

// EventKind identifies emitted transition events for dispatch.
type EventKind string

const (
	EventGameStarted     EventKind = "game_started"
	EventHandDealt       EventKind = "hand_dealt"
	EventBiddingStarted  EventKind = "bidding_started"
	EventBidPassed       EventKind = "bid_passed"
	EventDealerMustCall  EventKind = "dealer_must_call"
	EventTrumpSet        EventKind = "trump_set"
	EventCardPlayed      EventKind = "card_played"
	EventTrickWon        EventKind = "trick_won"
	EventTrickCleared    EventKind = "trick_cleared"
	EventHandCompleted   EventKind = "hand_completed"
	EventGameEnded       EventKind = "game_ended"
	EventLearningToggled EventKind = "learning_toggled"
	EventStateReset      EventKind = "state_reset"
)

// Event is a transition event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type GameStartedPayload struct {
	Dealer      int `json:"dealer"`
	TargetScore int `json:"target_score"`
}

// HandDealtPayload is sent privately to the seat's occupant.
type HandDealtPayload struct {
	Seat int           `json:"seat"`
	Hand []domain.Card `json:"hand"`
}

type BiddingStartedPayload struct {
	Dealer      int `json:"dealer"`
	FirstBidder int `json:"first_bidder"`
}

type BidPassedPayload struct {
	Seat     int `json:"seat"`
	NextSeat int `json:"next_seat"`
}

type DealerMustCallPayload struct {
	Dealer int `json:"dealer"`
}

type TrumpSetPayload struct {
	Seat      int         `json:"seat"`
	Suit      domain.Suit `json:"suit"`
	Alone     bool        `json:"alone"`
	FirstSeat int         `json:"first_seat"`
}

type CardPlayedPayload struct {
	Seat     int         `json:"seat"`
	Card     domain.Card `json:"card"`
	NextSeat int         `json:"next_seat"`
}

type TrickWonPayload struct {
	WinnerSeat int                  `json:"winner_seat"`
	Team       int                  `json:"team"`
	Trick      []domain.Card        `json:"trick"`
	Scores     [domain.NumTeams]int `json:"scores"`
}

type TrickClearedPayload struct {
	LeaderSeat int `json:"leader_seat"`
}

type HandCompletedPayload struct {
	TricksTaken [domain.NumTeams]int `json:"tricks_taken"`
	Scores      [domain.NumTeams]int `json:"scores"`
	NextDealer  int                  `json:"next_dealer"`
}

type GameEndedPayload struct {
	WinningTeam int                  `json:"winning_team"`
	Scores      [domain.NumTeams]int `json:"scores"`
}

type LearningToggledPayload struct {
	Enabled bool `json:"enabled"`
}

type StateResetPayload struct {
	Reason string `json:"reason"`
}
