package app

import (
	"fmt"
	"math/rand"
	"time"

	"euchre/internal/bot"
	"euchre/internal/domain"
)

// Service owns every transition of the game aggregate. Apply is the single
// entry point: it validates, mutates the aggregate atomically, and reports
// what happened as events plus the follow-up actions an external scheduler
// should feed back in. It never re-enters itself.
type Service struct {
	rng *rand.Rand
	cpu bot.Brain
}

// NewService constructs a Service with the provided rng and CPU strategy;
// nil arguments select a time-seeded rng and the standard strategy.
func NewService(rng *rand.Rand, cpu bot.Brain) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cpu == nil {
		cpu = &bot.StandardBrain{Tuning: bot.DefaultTuning}
	}
	return &Service{rng: rng, cpu: cpu}
}

// Apply runs one transition. On rejection the aggregate is untouched and the
// error says why. Structural corruption resets the table to its canonical
// initial state and signals ErrStateReset rather than propagating a crash.
func (s *Service) Apply(g *domain.Game, action Action) ([]Event, []Action, error) {
	if err := g.Validate(); err != nil {
		s.resetCorrupt(g)
		events := []Event{{
			Kind:    EventStateReset,
			Payload: StateResetPayload{Reason: err.Error()},
		}}
		return events, nil, fmt.Errorf("%w: %v", ErrStateReset, err)
	}

	switch action.Type {
	case ActionStartGame:
		return s.startGame(g)
	case ActionDeal:
		return s.deal(g)
	case ActionPass:
		return s.pass(g, action.Seat)
	case ActionSetTrump:
		return s.setTrump(g, action.Seat, action.Suit, action.Alone)
	case ActionPlayCard:
		return s.playCard(g, action.Seat, action.Card)
	case ActionClearTrick:
		return s.clearTrick(g)
	case ActionToggleLearningMode:
		return s.toggleLearningMode(g)
	case ActionCpuPlay:
		return s.cpuPlay(g)
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownAction, int(action.Type))
	}
}

// resetCorrupt rebuilds the canonical initial state in place, keeping only
// the persistent table preferences that survive a reset.
func (s *Service) resetCorrupt(g *domain.Game) {
	fresh := domain.NewGame()
	fresh.LearningMode = g.LearningMode
	fresh.TargetScore = g.TargetScore
	*g = *fresh
}

func (s *Service) startGame(g *domain.Game) ([]Event, []Action, error) {
	// Seat occupants and table preferences survive; everything else resets.
	g.Phase = domain.PhaseDealing
	g.Dealer = s.rng.Intn(domain.NumSeats)
	g.Current = domain.NextSeat(g.Dealer, -1)
	g.Deck = nil
	g.Trump = nil
	g.Caller = -1
	g.Alone = false
	g.Trick = nil
	g.TrickLeader = 0
	g.Scores = [domain.NumTeams]int{}
	g.TricksTaken = [domain.NumTeams]int{}
	g.PassCount = 0
	g.AwaitingClear = false
	for _, p := range g.Players {
		p.Hand = nil
		p.SittingOut = false
	}

	events := []Event{{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Dealer: g.Dealer, TargetScore: g.TargetScore},
	}}
	return events, []Action{Deal()}, nil
}

func (s *Service) deal(g *domain.Game) ([]Event, []Action, error) {
	if g.Phase != domain.PhaseDealing {
		return nil, nil, ErrWrongPhase
	}

	deck := domain.NewDeck()
	s.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	hands, kitty, err := domain.Deal(deck)
	if err != nil {
		// A failed deal abandons the hand; the table drops back to the lobby.
		g.Phase = domain.PhaseLobby
		return nil, nil, fmt.Errorf("deal failed: %w", err)
	}

	for seat, p := range g.Players {
		p.Hand = hands[seat]
		p.SittingOut = false
	}
	g.Deck = kitty
	g.Phase = domain.PhaseBidding
	g.Current = domain.NextSeat(g.Dealer, -1)
	g.PassCount = 0
	g.Trump = nil
	g.Caller = -1
	g.Alone = false
	g.Trick = nil
	g.TricksTaken = [domain.NumTeams]int{}
	g.AwaitingClear = false

	events := make([]Event, 0, domain.NumSeats+1)
	for seat, p := range g.Players {
		// Always targeted, even for an unoccupied seat. An empty recipient
		// list would read as broadcast-to-all downstream and leak the hand.
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Seat: seat, Hand: p.Hand},
			Recipients: []string{p.UserID},
		})
	}
	events = append(events, Event{
		Kind:    EventBiddingStarted,
		Payload: BiddingStartedPayload{Dealer: g.Dealer, FirstBidder: g.Current},
	})

	return events, s.cpuFollowUp(g), nil
}

func (s *Service) pass(g *domain.Game, seat int) ([]Event, []Action, error) {
	if g.Phase != domain.PhaseBidding {
		return nil, nil, ErrWrongPhase
	}
	if seat < 0 || seat >= domain.NumSeats {
		return nil, nil, ErrSeatOutOfRange
	}
	if seat != g.Current {
		return nil, nil, ErrNotYourTurn
	}
	if g.PassCount >= domain.NumSeats-1 && g.Current == g.Dealer {
		// Stuck dealer: the fourth seat to act has to call.
		return nil, nil, ErrDealerMustCall
	}

	g.PassCount++
	g.Current = domain.NextSeat(g.Current, -1)

	events := []Event{{
		Kind:    EventBidPassed,
		Payload: BidPassedPayload{Seat: seat, NextSeat: g.Current},
	}}
	if g.PassCount == domain.NumSeats-1 && g.Current == g.Dealer {
		events = append(events, Event{
			Kind:    EventDealerMustCall,
			Payload: DealerMustCallPayload{Dealer: g.Dealer},
		})
	}
	return events, s.cpuFollowUp(g), nil
}

func (s *Service) setTrump(g *domain.Game, seat int, suit domain.Suit, alone bool) ([]Event, []Action, error) {
	if g.Phase != domain.PhaseBidding {
		return nil, nil, ErrWrongPhase
	}
	if seat < 0 || seat >= domain.NumSeats {
		return nil, nil, ErrSeatOutOfRange
	}
	if seat != g.Current {
		return nil, nil, ErrNotYourTurn
	}
	if _, err := domain.LeftBowerSuit(suit); err != nil {
		return nil, nil, fmt.Errorf("set trump: %w", err)
	}

	trump := suit
	g.Trump = &trump
	g.Caller = seat
	g.Alone = alone
	g.PassCount = 0
	if alone {
		g.Players[domain.PartnerSeat(seat)].SittingOut = true
	}
	g.Phase = domain.PhasePlaying
	g.Current = domain.NextSeat(g.Dealer, g.SittingOutSeat())
	g.TrickLeader = g.Current

	events := []Event{{
		Kind: EventTrumpSet,
		Payload: TrumpSetPayload{
			Seat:      seat,
			Suit:      suit,
			Alone:     alone,
			FirstSeat: g.Current,
		},
	}}
	return events, s.cpuFollowUp(g), nil
}

func (s *Service) playCard(g *domain.Game, seat int, card domain.Card) ([]Event, []Action, error) {
	if g.Phase != domain.PhasePlaying {
		return nil, nil, ErrWrongPhase
	}
	if g.Trump == nil {
		return nil, nil, ErrTrumpNotSet
	}
	if g.AwaitingClear {
		return nil, nil, ErrAwaitingClear
	}
	if seat < 0 || seat >= domain.NumSeats {
		return nil, nil, ErrSeatOutOfRange
	}
	if g.Players[seat].SittingOut {
		return nil, nil, ErrSittingOut
	}
	if seat != g.Current {
		return nil, nil, ErrNotYourTurn
	}
	player := g.Players[seat]
	if !domain.HandContains(player.Hand, card) {
		return nil, nil, ErrCardNotInHand
	}
	if !domain.IsValidPlay(card, player.Hand, g.Trick, *g.Trump) {
		return nil, nil, ErrIllegalPlay
	}

	if len(g.Trick) == 0 {
		g.TrickLeader = seat
	}
	domain.RemoveCard(&player.Hand, card)
	g.Trick = append(g.Trick, card)

	if len(g.Trick) >= g.ActiveSeatCount() {
		return s.resolveTrick(g, seat, card)
	}

	g.Current = domain.NextSeat(seat, g.SittingOutSeat())
	events := []Event{{
		Kind:    EventCardPlayed,
		Payload: CardPlayedPayload{Seat: seat, Card: card, NextSeat: g.Current},
	}}
	return events, s.cpuFollowUp(g), nil
}

// resolveTrick closes out a full trick: score one point for the winning
// team and pause the table until the trick is cleared.
func (s *Service) resolveTrick(g *domain.Game, seat int, card domain.Card) ([]Event, []Action, error) {
	winIdx, err := domain.TrickWinner(g.Trick, *g.Trump)
	if err != nil {
		return nil, nil, err
	}
	winnerSeat := domain.SeatForTrickIndex(g.TrickLeader, winIdx, g.SittingOutSeat())
	team := domain.TeamForSeat(winnerSeat)
	g.Scores[team]++
	g.TricksTaken[team]++
	g.Current = winnerSeat
	g.AwaitingClear = true

	events := []Event{
		{
			Kind:    EventCardPlayed,
			Payload: CardPlayedPayload{Seat: seat, Card: card, NextSeat: winnerSeat},
		},
		{
			Kind: EventTrickWon,
			Payload: TrickWonPayload{
				WinnerSeat: winnerSeat,
				Team:       team,
				Trick:      append([]domain.Card(nil), g.Trick...),
				Scores:     g.Scores,
			},
		},
	}
	return events, []Action{ClearTrick()}, nil
}

func (s *Service) clearTrick(g *domain.Game) ([]Event, []Action, error) {
	if !g.AwaitingClear {
		return nil, nil, ErrNotAwaitingClear
	}

	g.Trick = nil
	g.AwaitingClear = false

	events := []Event{{
		Kind:    EventTrickCleared,
		Payload: TrickClearedPayload{LeaderSeat: g.Current},
	}}

	if !g.HandsEmpty() {
		// The trick winner, already the current seat, leads the next trick.
		g.TrickLeader = g.Current
		return events, s.cpuFollowUp(g), nil
	}

	if winner, over := s.gameWinner(g); over {
		g.Phase = domain.PhaseGameOver
		events = append(events, Event{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{WinningTeam: winner, Scores: g.Scores},
		})
		return events, nil, nil
	}

	tricks := g.TricksTaken
	g.Dealer = domain.NextSeat(g.Dealer, -1)
	g.Phase = domain.PhaseDealing
	g.Alone = false
	for _, p := range g.Players {
		p.SittingOut = false
	}
	events = append(events, Event{
		Kind: EventHandCompleted,
		Payload: HandCompletedPayload{
			TricksTaken: tricks,
			Scores:      g.Scores,
			NextDealer:  g.Dealer,
		},
	})
	return events, []Action{Deal()}, nil
}

func (s *Service) gameWinner(g *domain.Game) (int, bool) {
	if g.TargetScore <= 0 {
		return 0, false
	}
	best := 0
	for team := 1; team < domain.NumTeams; team++ {
		if g.Scores[team] > g.Scores[best] {
			best = team
		}
	}
	return best, g.Scores[best] >= g.TargetScore
}

func (s *Service) toggleLearningMode(g *domain.Game) ([]Event, []Action, error) {
	g.LearningMode = !g.LearningMode
	events := []Event{{
		Kind:    EventLearningToggled,
		Payload: LearningToggledPayload{Enabled: g.LearningMode},
	}}
	return events, nil, nil
}

// cpuPlay takes one turn for the current seat using the service's CPU
// strategy: a bidding decision during bidding, a card during play.
func (s *Service) cpuPlay(g *domain.Game) ([]Event, []Action, error) {
	player := g.Players[g.Current]
	if !player.IsCPU {
		return nil, nil, ErrNotCPUSeat
	}

	switch g.Phase {
	case domain.PhaseBidding:
		decision := s.cpu.ChooseBid(g, g.Current)
		if decision.Call {
			return s.setTrump(g, g.Current, decision.Suit, decision.Alone)
		}
		return s.pass(g, g.Current)
	case domain.PhasePlaying:
		if g.AwaitingClear {
			return nil, nil, ErrAwaitingClear
		}
		card, err := s.cpu.ChooseCard(g, g.Current)
		if err != nil {
			return nil, nil, err
		}
		return s.playCard(g, g.Current, card)
	default:
		return nil, nil, ErrWrongPhase
	}
}

// cpuFollowUp emits the scheduler hint when the next seat to act is CPU
// controlled and the table is not paused on a resolved trick.
func (s *Service) cpuFollowUp(g *domain.Game) []Action {
	if g.AwaitingClear {
		return nil
	}
	if g.Phase != domain.PhaseBidding && g.Phase != domain.PhasePlaying {
		return nil
	}
	if p := g.Players[g.Current]; p != nil && p.IsCPU {
		return []Action{CpuPlay()}
	}
	return nil
}
