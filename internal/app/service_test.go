package app

import (
	"errors"
	"math/rand"
	"testing"

	"euchre/internal/domain"
)

func newTestService() *Service {
	return NewService(rand.New(rand.NewSource(1)), nil)
}

func findEvent(events []Event, kind EventKind) (Event, bool) {
	for _, ev := range events {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}

func hasFollowUp(actions []Action, t ActionType) bool {
	for _, a := range actions {
		if a.Type == t {
			return true
		}
	}
	return false
}

// newBiddingGame returns a table mid-bid with fixed hands so decisions are
// deterministic.
func newBiddingGame(dealer int) *domain.Game {
	g := domain.NewGame()
	g.Phase = domain.PhaseBidding
	g.Dealer = dealer
	g.Current = domain.NextSeat(dealer, -1)
	for seat := 0; seat < domain.NumSeats; seat++ {
		g.Players[seat].UserID = "user-" + string(rune('a'+seat))
		g.Players[seat].Hand = []domain.Card{
			{Suit: domain.SuitClubs, Rank: domain.Rank9},
			{Suit: domain.SuitDiamonds, Rank: domain.Rank10},
			{Suit: domain.SuitHearts, Rank: domain.RankQ},
			{Suit: domain.SuitSpades, Rank: domain.RankK},
			{Suit: domain.SuitClubs, Rank: domain.RankA},
		}
	}
	return g
}

// newPlayingGame returns a table at the start of a trick with the given trump
// and leader; hands start empty for tests to fill in.
func newPlayingGame(trump domain.Suit, leader int) *domain.Game {
	g := domain.NewGame()
	g.Phase = domain.PhasePlaying
	g.Trump = &trump
	g.Caller = leader
	g.Current = leader
	g.TrickLeader = leader
	return g
}

func TestStartGameThenDeal(t *testing.T) {
	s := newTestService()
	g := domain.NewGame()
	g.TargetScore = 10
	g.Scores = [domain.NumTeams]int{3, 5}
	for seat, p := range g.Players {
		p.UserID = "user-" + string(rune('a'+seat))
	}

	events, followUps, err := s.Apply(g, StartGame())
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if g.Phase != domain.PhaseDealing {
		t.Fatalf("phase = %v, want dealing", g.Phase)
	}
	if g.Scores != [domain.NumTeams]int{} {
		t.Errorf("scores not reset: %v", g.Scores)
	}
	if _, ok := findEvent(events, EventGameStarted); !ok {
		t.Error("missing game_started event")
	}
	if !hasFollowUp(followUps, ActionDeal) {
		t.Fatal("StartGame must schedule a deal")
	}

	events, _, err = s.Apply(g, Deal())
	if err != nil {
		t.Fatalf("Deal: %v", err)
	}
	if g.Phase != domain.PhaseBidding {
		t.Fatalf("phase = %v, want bidding", g.Phase)
	}
	if g.Current != domain.NextSeat(g.Dealer, -1) {
		t.Errorf("first bidder = %d, want left of dealer %d", g.Current, g.Dealer)
	}
	seen := map[domain.Card]bool{}
	for seat, p := range g.Players {
		if len(p.Hand) != domain.HandSize {
			t.Fatalf("seat %d has %d cards, want %d", seat, len(p.Hand), domain.HandSize)
		}
		for _, c := range p.Hand {
			if seen[c] {
				t.Fatalf("card %v dealt twice", c)
			}
			seen[c] = true
		}
	}
	if len(g.Deck) != domain.DeckSize-domain.NumSeats*domain.HandSize {
		t.Errorf("kitty holds %d cards", len(g.Deck))
	}

	dealt := 0
	for _, ev := range events {
		if ev.Kind != EventHandDealt {
			continue
		}
		dealt++
		if len(ev.Recipients) != 1 {
			t.Fatalf("hand_dealt must be private, got recipients %v", ev.Recipients)
		}
		seat := ev.Payload.(HandDealtPayload).Seat
		if ev.Recipients[0] != g.Players[seat].UserID {
			t.Errorf("seat %d hand sent to %q, want %q", seat, ev.Recipients[0], g.Players[seat].UserID)
		}
	}
	if dealt != domain.NumSeats {
		t.Errorf("hand_dealt events = %d, want %d", dealt, domain.NumSeats)
	}
	if _, ok := findEvent(events, EventBiddingStarted); !ok {
		t.Error("missing bidding_started event")
	}
}

func TestDealTargetsHandEventsForUnoccupiedSeats(t *testing.T) {
	s := newTestService()
	g := domain.NewGame()
	g.TargetScore = 10

	if _, _, err := s.Apply(g, StartGame()); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	events, _, err := s.Apply(g, Deal())
	if err != nil {
		t.Fatalf("Deal: %v", err)
	}

	for _, ev := range events {
		if ev.Kind != EventHandDealt {
			continue
		}
		// An empty recipient list would mean broadcast; even a seat with no
		// occupant must keep its hand event targeted.
		if len(ev.Recipients) != 1 {
			t.Errorf("seat %d hand_dealt recipients = %v, want exactly one",
				ev.Payload.(HandDealtPayload).Seat, ev.Recipients)
		}
	}
}

func TestForcedDealerBid(t *testing.T) {
	s := newTestService()
	g := newBiddingGame(0)

	for _, seat := range []int{1, 2, 3} {
		events, _, err := s.Apply(g, Pass(seat))
		if err != nil {
			t.Fatalf("Pass(%d): %v", seat, err)
		}
		if seat == 3 {
			if _, ok := findEvent(events, EventDealerMustCall); !ok {
				t.Error("third pass must announce the stuck dealer")
			}
		}
	}
	if g.Current != 0 {
		t.Fatalf("current = %d, want dealer 0", g.Current)
	}

	if _, _, err := s.Apply(g, Pass(0)); !errors.Is(err, ErrDealerMustCall) {
		t.Fatalf("dealer pass error = %v, want ErrDealerMustCall", err)
	}

	events, _, err := s.Apply(g, SetTrump(0, domain.SuitClubs, false))
	if err != nil {
		t.Fatalf("SetTrump: %v", err)
	}
	if g.Phase != domain.PhasePlaying {
		t.Fatalf("phase = %v, want playing", g.Phase)
	}
	if g.Current != 1 {
		t.Errorf("first leader = %d, want left of dealer", g.Current)
	}
	if _, ok := findEvent(events, EventTrumpSet); !ok {
		t.Error("missing trump_set event")
	}
}

func TestBiddingGuards(t *testing.T) {
	s := newTestService()

	tests := []struct {
		name    string
		setup   func(*domain.Game)
		action  Action
		wantErr error
	}{
		{
			name:    "pass outside bidding",
			setup:   func(g *domain.Game) { g.Phase = domain.PhasePlaying },
			action:  Pass(1),
			wantErr: ErrWrongPhase,
		},
		{
			name:    "pass out of turn",
			action:  Pass(2),
			wantErr: ErrNotYourTurn,
		},
		{
			name:    "pass with bad seat",
			action:  Pass(7),
			wantErr: ErrSeatOutOfRange,
		},
		{
			name:    "set trump out of turn",
			action:  SetTrump(3, domain.SuitHearts, false),
			wantErr: ErrNotYourTurn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newBiddingGame(0)
			if tt.setup != nil {
				tt.setup(g)
			}
			if _, _, err := s.Apply(g, tt.action); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGoingAloneSitsOutPartner(t *testing.T) {
	s := newTestService()
	g := newBiddingGame(0)

	if _, _, err := s.Apply(g, SetTrump(1, domain.SuitHearts, true)); err != nil {
		t.Fatalf("SetTrump alone: %v", err)
	}
	if !g.Alone {
		t.Fatal("Alone flag not set")
	}
	partner := domain.PartnerSeat(1)
	if !g.Players[partner].SittingOut {
		t.Fatalf("seat %d should sit out", partner)
	}
	if g.ActiveSeatCount() != 3 {
		t.Errorf("active seats = %d, want 3", g.ActiveSeatCount())
	}
	// The dealer's left is seat 1; with seat 3 sitting out the lead stays 1.
	if g.Current != 1 {
		t.Errorf("leader = %d, want 1", g.Current)
	}
}

func TestGoingAloneLeadSkipsSittingOutSeat(t *testing.T) {
	s := newTestService()
	g := newBiddingGame(0)

	// Seat 3 calls alone; its partner seat 1 sits out, so the lead passes
	// from the dealer's left straight to seat 2.
	g.Current = 3
	if _, _, err := s.Apply(g, SetTrump(3, domain.SuitHearts, true)); err != nil {
		t.Fatalf("SetTrump alone: %v", err)
	}
	if !g.Players[1].SittingOut {
		t.Fatal("seat 1 should sit out")
	}
	if g.Current != 2 {
		t.Errorf("leader = %d, want 2", g.Current)
	}
}

func TestPlayCardGuards(t *testing.T) {
	s := newTestService()

	heartsK := domain.Card{Suit: domain.SuitHearts, Rank: domain.RankK}
	clubs9 := domain.Card{Suit: domain.SuitClubs, Rank: domain.Rank9}

	tests := []struct {
		name    string
		setup   func(*domain.Game)
		action  Action
		wantErr error
	}{
		{
			name:    "wrong phase",
			setup:   func(g *domain.Game) { g.Phase = domain.PhaseBidding },
			action:  PlayCard(0, heartsK),
			wantErr: ErrWrongPhase,
		},
		{
			name:    "trump unset",
			setup:   func(g *domain.Game) { g.Trump = nil },
			action:  PlayCard(0, heartsK),
			wantErr: ErrTrumpNotSet,
		},
		{
			name:    "awaiting clear",
			setup:   func(g *domain.Game) { g.AwaitingClear = true },
			action:  PlayCard(0, heartsK),
			wantErr: ErrAwaitingClear,
		},
		{
			name:    "out of turn",
			action:  PlayCard(2, heartsK),
			wantErr: ErrNotYourTurn,
		},
		{
			name: "sitting out",
			setup: func(g *domain.Game) {
				g.Alone = true
				g.Caller = 0
				g.Players[2].SittingOut = true
			},
			action:  PlayCard(2, heartsK),
			wantErr: ErrSittingOut,
		},
		{
			name:    "card not held",
			action:  PlayCard(0, domain.Card{Suit: domain.SuitSpades, Rank: domain.RankA}),
			wantErr: ErrCardNotInHand,
		},
		{
			name: "must follow suit",
			setup: func(g *domain.Game) {
				g.Trick = []domain.Card{{Suit: domain.SuitClubs, Rank: domain.RankA}}
				g.TrickLeader = 3
			},
			action:  PlayCard(0, heartsK),
			wantErr: ErrIllegalPlay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newPlayingGame(domain.SuitHearts, 0)
			g.Players[0].Hand = []domain.Card{heartsK, clubs9}
			if tt.setup != nil {
				tt.setup(g)
			}
			if _, _, err := s.Apply(g, tt.action); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTrickResolutionLeftBowerWins(t *testing.T) {
	s := newTestService()
	g := newPlayingGame(domain.SuitHearts, 1)
	g.Players[1].Hand = []domain.Card{{Suit: domain.SuitDiamonds, Rank: domain.Rank9}}
	g.Players[2].Hand = []domain.Card{{Suit: domain.SuitSpades, Rank: domain.Rank9}}
	g.Players[3].Hand = []domain.Card{{Suit: domain.SuitDiamonds, Rank: domain.RankA}}
	g.Players[0].Hand = []domain.Card{{Suit: domain.SuitDiamonds, Rank: domain.RankJ}}

	plays := []struct {
		seat int
		card domain.Card
	}{
		{1, g.Players[1].Hand[0]},
		{2, g.Players[2].Hand[0]},
		{3, g.Players[3].Hand[0]},
		{0, g.Players[0].Hand[0]},
	}

	var events []Event
	var followUps []Action
	var err error
	for _, p := range plays {
		events, followUps, err = s.Apply(g, PlayCard(p.seat, p.card))
		if err != nil {
			t.Fatalf("PlayCard(%d, %v): %v", p.seat, p.card, err)
		}
	}

	// The jack of diamonds plays as the highest heart and takes the trick.
	ev, ok := findEvent(events, EventTrickWon)
	if !ok {
		t.Fatal("missing trick_won event")
	}
	payload := ev.Payload.(TrickWonPayload)
	if payload.WinnerSeat != 0 {
		t.Errorf("winner = %d, want 0", payload.WinnerSeat)
	}
	if payload.Team != domain.TeamForSeat(0) {
		t.Errorf("team = %d, want %d", payload.Team, domain.TeamForSeat(0))
	}
	if g.Scores[0] != 1 {
		t.Errorf("scores = %v, want a point for team 0", g.Scores)
	}
	if !g.AwaitingClear {
		t.Fatal("table must pause until the trick clears")
	}
	if !hasFollowUp(followUps, ActionClearTrick) {
		t.Fatal("completed trick must schedule a clear")
	}
}

func TestGoingAloneTrickHasThreeCards(t *testing.T) {
	s := newTestService()
	g := newPlayingGame(domain.SuitHearts, 0)
	g.Alone = true
	g.Caller = 0
	g.Players[2].SittingOut = true
	g.Players[0].Hand = []domain.Card{{Suit: domain.SuitHearts, Rank: domain.RankA}}
	g.Players[1].Hand = []domain.Card{{Suit: domain.SuitClubs, Rank: domain.Rank9}}
	g.Players[3].Hand = []domain.Card{{Suit: domain.SuitClubs, Rank: domain.Rank10}}

	if _, _, err := s.Apply(g, PlayCard(0, g.Players[0].Hand[0])); err != nil {
		t.Fatalf("lead: %v", err)
	}
	if g.Current != 1 {
		t.Fatalf("current = %d, want 1", g.Current)
	}
	if _, _, err := s.Apply(g, PlayCard(1, g.Players[1].Hand[0])); err != nil {
		t.Fatalf("second play: %v", err)
	}
	if g.Current != 3 {
		t.Fatalf("current = %d, want to skip seat 2", g.Current)
	}

	events, _, err := s.Apply(g, PlayCard(3, g.Players[3].Hand[0]))
	if err != nil {
		t.Fatalf("third play: %v", err)
	}
	ev, ok := findEvent(events, EventTrickWon)
	if !ok {
		t.Fatal("three cards must complete a lone trick")
	}
	if got := ev.Payload.(TrickWonPayload).WinnerSeat; got != 0 {
		t.Errorf("winner = %d, want 0", got)
	}
}

func TestClearTrickAdvancesHand(t *testing.T) {
	s := newTestService()
	g := newPlayingGame(domain.SuitHearts, 0)
	g.Players[0].Hand = []domain.Card{{Suit: domain.SuitHearts, Rank: domain.RankA}}
	g.Players[1].Hand = []domain.Card{
		{Suit: domain.SuitClubs, Rank: domain.Rank9},
		{Suit: domain.SuitClubs, Rank: domain.Rank10},
	}
	g.Players[2].Hand = []domain.Card{{Suit: domain.SuitClubs, Rank: domain.RankJ}}
	g.Players[3].Hand = []domain.Card{{Suit: domain.SuitClubs, Rank: domain.RankQ}}

	for _, p := range []struct {
		seat int
		card domain.Card
	}{
		{0, domain.Card{Suit: domain.SuitHearts, Rank: domain.RankA}},
		{1, domain.Card{Suit: domain.SuitClubs, Rank: domain.Rank9}},
		{2, domain.Card{Suit: domain.SuitClubs, Rank: domain.RankJ}},
		{3, domain.Card{Suit: domain.SuitClubs, Rank: domain.RankQ}},
	} {
		if _, _, err := s.Apply(g, PlayCard(p.seat, p.card)); err != nil {
			t.Fatalf("PlayCard(%d): %v", p.seat, err)
		}
	}

	if _, _, err := s.Apply(g, PlayCard(0, domain.Card{})); !errors.Is(err, ErrAwaitingClear) {
		t.Fatalf("play during pause = %v, want ErrAwaitingClear", err)
	}

	events, _, err := s.Apply(g, ClearTrick())
	if err != nil {
		t.Fatalf("ClearTrick: %v", err)
	}
	if len(g.Trick) != 0 || g.AwaitingClear {
		t.Fatal("trick not cleared")
	}
	if _, ok := findEvent(events, EventTrickCleared); !ok {
		t.Error("missing trick_cleared event")
	}
	// Seat 0 took the trick and leads the next one.
	if g.Current != 0 || g.TrickLeader != 0 {
		t.Errorf("leader = %d/%d, want winner 0", g.Current, g.TrickLeader)
	}

	if _, _, err := s.Apply(g, ClearTrick()); !errors.Is(err, ErrNotAwaitingClear) {
		t.Errorf("double clear = %v, want ErrNotAwaitingClear", err)
	}
}

func TestHandCompletionRotatesDealer(t *testing.T) {
	s := newTestService()
	g := newPlayingGame(domain.SuitHearts, 1)
	g.Dealer = 0
	g.Players[1].Hand = []domain.Card{{Suit: domain.SuitClubs, Rank: domain.Rank9}}
	g.Players[2].Hand = []domain.Card{{Suit: domain.SuitClubs, Rank: domain.Rank10}}
	g.Players[3].Hand = []domain.Card{{Suit: domain.SuitClubs, Rank: domain.RankJ}}
	g.Players[0].Hand = []domain.Card{{Suit: domain.SuitClubs, Rank: domain.RankQ}}

	for _, p := range []struct {
		seat int
		card domain.Card
	}{
		{1, domain.Card{Suit: domain.SuitClubs, Rank: domain.Rank9}},
		{2, domain.Card{Suit: domain.SuitClubs, Rank: domain.Rank10}},
		{3, domain.Card{Suit: domain.SuitClubs, Rank: domain.RankJ}},
		{0, domain.Card{Suit: domain.SuitClubs, Rank: domain.RankQ}},
	} {
		if _, _, err := s.Apply(g, PlayCard(p.seat, p.card)); err != nil {
			t.Fatalf("PlayCard(%d): %v", p.seat, err)
		}
	}

	events, followUps, err := s.Apply(g, ClearTrick())
	if err != nil {
		t.Fatalf("ClearTrick: %v", err)
	}
	if g.Phase != domain.PhaseDealing {
		t.Fatalf("phase = %v, want dealing", g.Phase)
	}
	if g.Dealer != 1 {
		t.Errorf("dealer = %d, want rotation to 1", g.Dealer)
	}
	ev, ok := findEvent(events, EventHandCompleted)
	if !ok {
		t.Fatal("missing hand_completed event")
	}
	if got := ev.Payload.(HandCompletedPayload).NextDealer; got != 1 {
		t.Errorf("next dealer = %d, want 1", got)
	}
	if !hasFollowUp(followUps, ActionDeal) {
		t.Fatal("completed hand must schedule the next deal")
	}
}

func TestGameEndsAtTargetScore(t *testing.T) {
	s := newTestService()
	g := newPlayingGame(domain.SuitHearts, 0)
	g.TargetScore = 5
	g.Scores = [domain.NumTeams]int{4, 3}
	g.Players[0].Hand = []domain.Card{{Suit: domain.SuitHearts, Rank: domain.RankA}}
	g.Players[1].Hand = []domain.Card{{Suit: domain.SuitClubs, Rank: domain.Rank9}}
	g.Players[2].Hand = []domain.Card{{Suit: domain.SuitClubs, Rank: domain.Rank10}}
	g.Players[3].Hand = []domain.Card{{Suit: domain.SuitClubs, Rank: domain.RankJ}}

	for _, p := range []struct {
		seat int
		card domain.Card
	}{
		{0, domain.Card{Suit: domain.SuitHearts, Rank: domain.RankA}},
		{1, domain.Card{Suit: domain.SuitClubs, Rank: domain.Rank9}},
		{2, domain.Card{Suit: domain.SuitClubs, Rank: domain.Rank10}},
		{3, domain.Card{Suit: domain.SuitClubs, Rank: domain.RankJ}},
	} {
		if _, _, err := s.Apply(g, PlayCard(p.seat, p.card)); err != nil {
			t.Fatalf("PlayCard(%d): %v", p.seat, err)
		}
	}

	events, followUps, err := s.Apply(g, ClearTrick())
	if err != nil {
		t.Fatalf("ClearTrick: %v", err)
	}
	if g.Phase != domain.PhaseGameOver {
		t.Fatalf("phase = %v, want game_over", g.Phase)
	}
	ev, ok := findEvent(events, EventGameEnded)
	if !ok {
		t.Fatal("missing game_ended event")
	}
	payload := ev.Payload.(GameEndedPayload)
	if payload.WinningTeam != 0 {
		t.Errorf("winning team = %d, want 0", payload.WinningTeam)
	}
	if len(followUps) != 0 {
		t.Errorf("game over must not schedule work, got %v", followUps)
	}
}

func TestCorruptStateResets(t *testing.T) {
	s := newTestService()
	g := domain.NewGame()
	g.LearningMode = true
	g.TargetScore = 10
	g.Players[2] = nil

	events, _, err := s.Apply(g, Pass(0))
	if !errors.Is(err, ErrStateReset) {
		t.Fatalf("err = %v, want ErrStateReset", err)
	}
	if _, ok := findEvent(events, EventStateReset); !ok {
		t.Error("missing state_reset event")
	}
	if g.Phase != domain.PhaseLobby {
		t.Errorf("phase = %v, want lobby", g.Phase)
	}
	if g.Players[2] == nil {
		t.Error("reset must restore every seat")
	}
	if !g.LearningMode || g.TargetScore != 10 {
		t.Error("reset must keep table preferences")
	}
}

func TestCpuPlayBidsAndPlays(t *testing.T) {
	s := newTestService()
	g := newBiddingGame(0)
	g.Players[1].IsCPU = true

	// The fixed bidding hand is weak, so the CPU passes.
	events, _, err := s.Apply(g, CpuPlay())
	if err != nil {
		t.Fatalf("CpuPlay: %v", err)
	}
	if _, ok := findEvent(events, EventBidPassed); !ok {
		t.Error("weak CPU hand should pass")
	}
	if g.Current != 2 {
		t.Errorf("current = %d, want 2", g.Current)
	}

	if _, _, err := s.Apply(g, CpuPlay()); !errors.Is(err, ErrNotCPUSeat) {
		t.Fatalf("human seat CpuPlay = %v, want ErrNotCPUSeat", err)
	}
}

func TestCpuPlaySchedulesNextCpuSeat(t *testing.T) {
	s := newTestService()
	g := newBiddingGame(0)
	g.Players[1].IsCPU = true
	g.Players[2].IsCPU = true

	_, followUps, err := s.Apply(g, CpuPlay())
	if err != nil {
		t.Fatalf("CpuPlay: %v", err)
	}
	if !hasFollowUp(followUps, ActionCpuPlay) {
		t.Fatal("next CPU seat should be scheduled")
	}
}

func TestCpuPlaysLegalCard(t *testing.T) {
	s := newTestService()
	g := newPlayingGame(domain.SuitHearts, 3)
	g.Players[3].Hand = []domain.Card{{Suit: domain.SuitClubs, Rank: domain.RankA}}
	g.Players[0].IsCPU = true
	g.Players[0].Hand = []domain.Card{
		{Suit: domain.SuitClubs, Rank: domain.Rank9},
		{Suit: domain.SuitHearts, Rank: domain.RankA},
	}

	if _, _, err := s.Apply(g, PlayCard(3, g.Players[3].Hand[0])); err != nil {
		t.Fatalf("lead: %v", err)
	}

	events, _, err := s.Apply(g, CpuPlay())
	if err != nil {
		t.Fatalf("CpuPlay: %v", err)
	}
	ev, ok := findEvent(events, EventCardPlayed)
	if !ok {
		t.Fatal("missing card_played event")
	}
	if got := ev.Payload.(CardPlayedPayload).Card; got.Suit != domain.SuitClubs {
		t.Errorf("CPU played %v, must follow clubs", got)
	}
}

func TestToggleLearningMode(t *testing.T) {
	s := newTestService()
	g := domain.NewGame()

	events, _, err := s.Apply(g, ToggleLearningMode())
	if err != nil {
		t.Fatalf("ToggleLearningMode: %v", err)
	}
	if !g.LearningMode {
		t.Fatal("learning mode should be on")
	}
	ev, ok := findEvent(events, EventLearningToggled)
	if !ok {
		t.Fatal("missing learning_toggled event")
	}
	if !ev.Payload.(LearningToggledPayload).Enabled {
		t.Error("payload should report enabled")
	}

	if _, _, err := s.Apply(g, ToggleLearningMode()); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if g.LearningMode {
		t.Error("learning mode should be off again")
	}
}

func TestUnknownAction(t *testing.T) {
	s := newTestService()
	g := domain.NewGame()

	if _, _, err := s.Apply(g, Action{Type: ActionType(99)}); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("err = %v, want ErrUnknownAction", err)
	}
}
