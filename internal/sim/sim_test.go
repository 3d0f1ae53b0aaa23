package sim

import (
	"io"
	"log/slog"
	"testing"
)

func TestRunnerPlaysCleanGames(t *testing.T) {
	r := &Runner{
		Games:       5,
		Seed:        99,
		TargetScore: 5,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	report, err := r.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Games != 5 {
		t.Fatalf("Games = %d, want 5", report.Games)
	}
	if report.Hands < 5 {
		t.Errorf("Hands = %d, want at least one per game", report.Hands)
	}
	if report.Tricks < report.Hands*5 {
		t.Errorf("Tricks = %d, want five per hand (%d hands)", report.Tricks, report.Hands)
	}
	if report.TeamWins[0]+report.TeamWins[1] != report.Games {
		t.Errorf("TeamWins %v do not sum to %d games", report.TeamWins, report.Games)
	}
}
