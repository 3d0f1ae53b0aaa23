package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"euchre/internal/sim"
)

func main() {
	games := flag.Int("games", 100, "number of games to play")
	seed := flag.Int64("seed", time.Now().UnixNano(), "base rng seed")
	target := flag.Int("target", 10, "target score per game")
	verbose := flag.Bool("v", false, "log every hand")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))

	runner := &sim.Runner{
		Games:       *games,
		Seed:        *seed,
		TargetScore: *target,
		Logger:      logger,
	}

	report, err := runner.Run()
	if err != nil {
		logger.Error("simulation aborted", "err", err)
		os.Exit(1)
	}

	logger.Info("simulation finished",
		"games", report.Games,
		"hands", report.Hands,
		"tricks", report.Tricks,
		"team0_wins", report.TeamWins[0],
		"team1_wins", report.TeamWins[1],
		"lone_calls", report.LoneCalls,
		"forced_calls", report.ForcedCalls,
	)
}
