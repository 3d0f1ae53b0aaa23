package domain

import "fmt"

// Phase is the lifecycle stage of a game.
type Phase string

const (
	// PhaseLobby is the pre-game state where seats fill up.
	PhaseLobby Phase = "lobby"
	// PhaseDealing covers deck construction and the deal.
	PhaseDealing Phase = "dealing"
	// PhaseBidding is the trump-calling round.
	PhaseBidding Phase = "bidding"
	// PhasePlaying is active trick play.
	PhasePlaying Phase = "playing"
	// PhaseGameOver is reached when a team hits the target score.
	PhaseGameOver Phase = "game_over"
)

// NumTeams is the number of partnerships; seats 0 and 2 face seats 1 and 3.
const NumTeams = 2

// Player holds per-seat state for one participant.
type Player struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Seat        int    `json:"seat"`
	Hand        []Card `json:"hand"`
	IsCPU       bool   `json:"is_cpu"`
	// SittingOut is set on the going-alone caller's partner for the duration
	// of that hand.
	SittingOut bool `json:"sitting_out"`
}

// Game is the authoritative aggregate for one table. It is mutated only by
// the app service, one transition at a time.
type Game struct {
	Phase   Phase             `json:"phase"`
	Players [NumSeats]*Player `json:"players"`

	// Deck holds the kitty, the cards left over after the deal.
	Deck []Card `json:"deck"`

	Dealer  int `json:"dealer"`
	Current int `json:"current"`

	Trump  *Suit `json:"trump"` // nil until bidding resolves
	Caller int   `json:"caller"`
	Alone  bool  `json:"alone"`

	Trick       []Card `json:"trick"`
	TrickLeader int    `json:"trick_leader"`

	Scores      [NumTeams]int `json:"scores"`
	TricksTaken [NumTeams]int `json:"tricks_taken"` // per hand, reset on deal

	PassCount     int  `json:"pass_count"`
	AwaitingClear bool `json:"awaiting_clear"`

	// LearningMode is a UI preference carried with the game; it has no
	// gameplay effect.
	LearningMode bool `json:"learning_mode"`

	// TargetScore ends the game once a team reaches it; 0 plays forever.
	TargetScore int `json:"target_score"`
}

// NewGame returns the canonical initial state: an empty lobby table.
func NewGame() *Game {
	g := &Game{
		Phase:   PhaseLobby,
		Dealer:  0,
		Current: 0,
		Caller:  -1,
	}
	for seat := 0; seat < NumSeats; seat++ {
		g.Players[seat] = &Player{Seat: seat}
	}
	return g
}

// TeamForSeat returns the partnership index for a seat.
func TeamForSeat(seat int) int {
	return seat % NumTeams
}

// PartnerSeat returns the seat across the table.
func PartnerSeat(seat int) int {
	return (seat + 2) % NumSeats
}

// SittingOutSeat returns the seat currently sitting out, or -1.
func (g *Game) SittingOutSeat() int {
	for seat, p := range g.Players {
		if p != nil && p.SittingOut {
			return seat
		}
	}
	return -1
}

// ActiveSeatCount returns how many seats play the current hand: 3 when a
// player sits out, otherwise 4.
func (g *Game) ActiveSeatCount() int {
	if g.SittingOutSeat() >= 0 {
		return NumSeats - 1
	}
	return NumSeats
}

// HandsEmpty reports whether every active seat has played out its hand.
func (g *Game) HandsEmpty() bool {
	for _, p := range g.Players {
		if p == nil || p.SittingOut {
			continue
		}
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants every transition relies on. A
// violation means the aggregate was corrupted outside the state machine.
func (g *Game) Validate() error {
	for seat, p := range g.Players {
		if p == nil {
			return fmt.Errorf("seat %d has no player state", seat)
		}
	}
	if g.Dealer < 0 || g.Dealer >= NumSeats {
		return fmt.Errorf("dealer seat %d out of range", g.Dealer)
	}
	if g.Current < 0 || g.Current >= NumSeats {
		return fmt.Errorf("current seat %d out of range", g.Current)
	}
	if len(g.Trick) > g.ActiveSeatCount() {
		return fmt.Errorf("trick holds %d cards with %d active seats", len(g.Trick), g.ActiveSeatCount())
	}
	sittingOut := g.SittingOutSeat()
	if sittingOut >= 0 && !g.Alone {
		return fmt.Errorf("seat %d sits out without a lone caller", sittingOut)
	}
	return nil
}
