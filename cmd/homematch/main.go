package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/povarna/generative-ai-agents/homematch/cmd/homematch/commands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := commands.App().Run(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("homematch failed")
		os.Exit(1)
	}
}
