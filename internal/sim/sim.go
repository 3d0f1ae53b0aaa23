// Package sim drives full self-play games through the state machine, the
// synchronous counterpart of the Nakama tick loop. It exists to exercise the
// engine end to end and to surface invariant violations under many seeds.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"euchre/internal/app"
	"euchre/internal/bot"
	"euchre/internal/domain"
)

// Runner plays a number of CPU-only games and aggregates what happened.
type Runner struct {
	Games       int
	Seed        int64
	TargetScore int
	Logger      *slog.Logger
}

// Report aggregates the outcomes of a simulation run.
type Report struct {
	Games       int
	Hands       int
	Tricks      int
	TeamWins    [domain.NumTeams]int
	LoneCalls   int
	ForcedCalls int
}

// maxTransitions bounds a single game; a healthy game to 10 points stays
// well under it.
const maxTransitions = 10000

// Run plays all games. The first invariant violation or rejected transition
// aborts the run with an error naming the seed.
func (r *Runner) Run() (Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	report := Report{}
	for i := 0; i < r.Games; i++ {
		seed := r.Seed + int64(i)
		if err := r.playGame(logger, seed, &report); err != nil {
			return report, fmt.Errorf("game %d (seed %d): %w", i, seed, err)
		}
		report.Games++
	}
	return report, nil
}

func (r *Runner) playGame(logger *slog.Logger, seed int64, report *Report) error {
	rng := rand.New(rand.NewSource(seed))
	service := app.NewService(rng, &bot.StandardBrain{Tuning: bot.DefaultTuning})

	game := domain.NewGame()
	game.TargetScore = r.TargetScore
	if game.TargetScore <= 0 {
		game.TargetScore = 10
	}
	for seat, p := range game.Players {
		identity := bot.GetIdentity(seat)
		p.UserID = identity.UserID
		p.DisplayName = identity.DisplayName
		p.IsCPU = true
	}

	queue := []app.Action{app.StartGame()}
	transitions := 0

	for len(queue) > 0 {
		if transitions++; transitions > maxTransitions {
			return fmt.Errorf("exceeded %d transitions without finishing", maxTransitions)
		}

		action := queue[0]
		queue = queue[1:]

		events, followUps, err := service.Apply(game, action)
		if err != nil {
			return fmt.Errorf("%s rejected: %w", action.Type, err)
		}
		queue = append(queue, followUps...)

		for _, ev := range events {
			switch ev.Kind {
			case app.EventTrumpSet:
				p := ev.Payload.(app.TrumpSetPayload)
				logger.Debug("trump set", "seat", p.Seat, "suit", p.Suit.String(), "alone", p.Alone)
				if p.Alone {
					report.LoneCalls++
				}
			case app.EventDealerMustCall:
				report.ForcedCalls++
			case app.EventTrickWon:
				report.Tricks++
				p := ev.Payload.(app.TrickWonPayload)
				if len(p.Trick) != game.ActiveSeatCount() {
					return fmt.Errorf("trick held %d cards with %d active seats", len(p.Trick), game.ActiveSeatCount())
				}
			case app.EventHandCompleted:
				report.Hands++
				p := ev.Payload.(app.HandCompletedPayload)
				if got := p.TricksTaken[0] + p.TricksTaken[1]; got != domain.HandSize {
					return fmt.Errorf("hand yielded %d tricks, want %d", got, domain.HandSize)
				}
				logger.Debug("hand completed", "tricks", p.TricksTaken, "scores", p.Scores)
			case app.EventGameEnded:
				p := ev.Payload.(app.GameEndedPayload)
				report.Hands++
				report.TeamWins[p.WinningTeam]++
				logger.Info("game ended", "seed", seed, "winner", p.WinningTeam, "scores", p.Scores)
			}
		}

		if err := game.Validate(); err != nil {
			return fmt.Errorf("state invalid after %s: %w", action.Type, err)
		}
	}

	if game.Phase != domain.PhaseGameOver {
		return fmt.Errorf("finished in phase %s", game.Phase)
	}
	return nil
}
