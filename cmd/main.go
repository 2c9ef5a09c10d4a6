package main

import (
	"context"
	"os"

	"github.com/desertthunder/spins/internal/shared"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	// .env is optional; it only feeds the SPINS_* flag sources.
	_ = godotenv.Load()

	logger := shared.NewLogger(nil)
	shared.SetLogLevel(logger, shared.DefaultLogLevel)

	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "spins",
		Usage:    "Catalog albums and keep track of what you've played",
		Version:  "0.1.0",
		Flags:    listenFlags(),
		Action:   runner.Listen,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
