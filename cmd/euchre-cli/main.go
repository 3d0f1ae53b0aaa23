package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"euchre/internal/app"
	"euchre/internal/bot"
	"euchre/internal/domain"
)

// humanSeat is the seat the terminal player occupies; the rest are CPUs.
const humanSeat = 0

func main() {
	target := flag.Int("target", 10, "target score")
	hints := flag.Bool("hints", false, "start with play hints enabled")
	flag.Parse()

	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)
	pterm.Print("\n")

	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Eu", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("chre", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err != nil {
		logger.Error(err.Error())
	}
	pterm.Print(title)

	name, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your name").WithDefaultValue("You").Show()
	pterm.Println()

	service := app.NewService(nil, nil)
	hinter := &bot.StandardBrain{Tuning: bot.DefaultTuning}

	game := domain.NewGame()
	game.TargetScore = *target
	game.LearningMode = *hints
	game.Players[humanSeat].UserID = "human"
	game.Players[humanSeat].DisplayName = name
	for seat := 1; seat < domain.NumSeats; seat++ {
		identity := bot.GetIdentity(seat)
		game.Players[seat].UserID = identity.UserID
		game.Players[seat].DisplayName = identity.DisplayName
		game.Players[seat].IsCPU = true
	}

	pterm.Info.Printfln("You sit at seat %d; %s is your partner.", humanSeat, game.Players[domain.PartnerSeat(humanSeat)].DisplayName)

	queue := []app.Action{app.StartGame()}
	for {
		for len(queue) > 0 {
			action := queue[0]
			queue = queue[1:]

			events, followUps, err := service.Apply(game, action)
			if err != nil {
				logger.Error("game error", "action", action.Type.String(), "err", err)
				os.Exit(1)
			}
			for _, ev := range events {
				renderEvent(game, ev)
			}
			queue = append(queue, followUps...)
		}

		if game.Phase == domain.PhaseGameOver {
			break
		}

		switch {
		case game.Phase == domain.PhaseBidding && game.Current == humanSeat:
			queue = append(queue, promptBid(game, hinter))
		case game.Phase == domain.PhasePlaying && game.Current == humanSeat && !game.AwaitingClear:
			queue = append(queue, promptPlay(game, hinter))
		default:
			logger.Error("no action available", "phase", string(game.Phase), "current", game.Current)
			os.Exit(1)
		}
	}
}

// promptBid asks the human for a bidding decision. The stuck dealer cannot
// pass.
func promptBid(game *domain.Game, hinter bot.Brain) app.Action {
	showHand(game)

	forced := game.Current == game.Dealer && game.PassCount >= domain.NumSeats-1
	if game.LearningMode {
		hint := hinter.ChooseBid(game, humanSeat)
		if hint.Call && hint.Alone {
			pterm.Info.Printfln("Hint: call %s and go alone", hint.Suit)
		} else if hint.Call {
			pterm.Info.Printfln("Hint: call %s", hint.Suit)
		} else if !forced {
			pterm.Info.Println("Hint: pass")
		}
	}

	options := []string{}
	if !forced {
		options = append(options, "Pass")
	} else {
		pterm.Warning.Println("Three passes came before you; as dealer you must call trump.")
	}
	for _, suit := range domain.Suits() {
		options = append(options, "Call "+suit.String())
	}

	choice, _ := pterm.DefaultInteractiveSelect.WithOptions(options).WithDefaultText("Your bid").Show()
	if choice == "Pass" {
		return app.Pass(humanSeat)
	}

	var called domain.Suit
	for _, suit := range domain.Suits() {
		if choice == "Call "+suit.String() {
			called = suit
			break
		}
	}

	alone := false
	if !forced {
		alone, _ = pterm.DefaultInteractiveConfirm.WithDefaultText("Go alone?").Show()
	}
	return app.SetTrump(humanSeat, called, alone)
}

// promptPlay asks the human for a legal card.
func promptPlay(game *domain.Game, hinter bot.Brain) app.Action {
	showHand(game)
	showTrick(game)

	if game.LearningMode {
		if hint, err := hinter.ChooseCard(game, humanSeat); err == nil {
			pterm.Info.Printfln("Hint: play %s", hint)
		}
	}

	hand := game.Players[humanSeat].Hand
	legal := []domain.Card{}
	options := []string{}
	for _, c := range hand {
		if domain.IsValidPlay(c, hand, game.Trick, *game.Trump) {
			legal = append(legal, c)
			options = append(options, c.String())
		}
	}

	choice, _ := pterm.DefaultInteractiveSelect.WithOptions(options).WithDefaultText("Your play").Show()
	for i, opt := range options {
		if opt == choice {
			return app.PlayCard(humanSeat, legal[i])
		}
	}
	return app.PlayCard(humanSeat, legal[0])
}

func showHand(game *domain.Game) {
	hand := ""
	for _, c := range game.Players[humanSeat].Hand {
		hand += c.String() + "  "
	}
	box := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2).WithTitle("Your hand").WithTitleTopLeft()
	pterm.Println(box.Sprint(hand))
}

func showTrick(game *domain.Game) {
	if len(game.Trick) == 0 {
		pterm.Info.Println("You lead the trick.")
		return
	}
	trick := ""
	for i, c := range game.Trick {
		seat := domain.SeatForTrickIndex(game.TrickLeader, i, game.SittingOutSeat())
		trick += fmt.Sprintf("%s: %s  ", game.Players[seat].DisplayName, c)
	}
	pterm.Info.Printfln("On the table: %s(trump %s)", trick, *game.Trump)
}

func renderEvent(game *domain.Game, ev app.Event) {
	switch ev.Kind {
	case app.EventGameStarted:
		p := ev.Payload.(app.GameStartedPayload)
		pterm.Success.Printfln("Game on, first to %d. %s deals.", p.TargetScore, game.Players[p.Dealer].DisplayName)
	case app.EventBiddingStarted:
		p := ev.Payload.(app.BiddingStartedPayload)
		pterm.Info.Printfln("New hand. %s dealt; %s bids first.", game.Players[p.Dealer].DisplayName, game.Players[p.FirstBidder].DisplayName)
	case app.EventBidPassed:
		p := ev.Payload.(app.BidPassedPayload)
		pterm.Info.Printfln("%s passes.", game.Players[p.Seat].DisplayName)
	case app.EventDealerMustCall:
		p := ev.Payload.(app.DealerMustCallPayload)
		pterm.Warning.Printfln("%s is stuck and must call trump.", game.Players[p.Dealer].DisplayName)
	case app.EventTrumpSet:
		p := ev.Payload.(app.TrumpSetPayload)
		msg := fmt.Sprintf("%s calls %s", game.Players[p.Seat].DisplayName, p.Suit)
		if p.Alone {
			msg += " and goes alone"
		}
		pterm.Success.Printfln("%s.", msg)
	case app.EventCardPlayed:
		p := ev.Payload.(app.CardPlayedPayload)
		if p.Seat != humanSeat {
			pterm.Info.Printfln("%s plays %s.", game.Players[p.Seat].DisplayName, p.Card)
		}
	case app.EventTrickWon:
		p := ev.Payload.(app.TrickWonPayload)
		pterm.Success.Printfln("%s takes the trick. Score: you %d, them %d.",
			game.Players[p.WinnerSeat].DisplayName,
			p.Scores[domain.TeamForSeat(humanSeat)],
			p.Scores[1-domain.TeamForSeat(humanSeat)])
	case app.EventHandCompleted:
		p := ev.Payload.(app.HandCompletedPayload)
		pterm.Info.Printfln("Hand over. %s deals next.", game.Players[p.NextDealer].DisplayName)
	case app.EventGameEnded:
		p := ev.Payload.(app.GameEndedPayload)
		if p.WinningTeam == domain.TeamForSeat(humanSeat) {
			pterm.Success.Printfln("Your team wins %d to %d!", p.Scores[p.WinningTeam], p.Scores[1-p.WinningTeam])
		} else {
			pterm.Error.Printfln("Your team loses %d to %d.", p.Scores[1-p.WinningTeam], p.Scores[p.WinningTeam])
		}
	case app.EventStateReset:
		pterm.Error.Println("The table had to be reset.")
	}
}
