package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tickets/pkg/api"
	"github.com/travigo/tickets/pkg/tickets"
)

func main() {
	if os.Getenv("TICKETS_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	if os.Getenv("TICKETS_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := tickets.NewApp()
	app.Commands = append(app.Commands, api.RegisterCLI())

	err := app.Run(tickets.PermuteArgs(app, os.Args))
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
