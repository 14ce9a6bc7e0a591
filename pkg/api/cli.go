package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/tickets/pkg/config"
	"github.com/travigo/tickets/pkg/lookup"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Serves schedule lookups over HTTP",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					service, err := lookup.NewService(cfg)
					if err != nil {
						return err
					}

					log.Info().Str("listen", c.String("listen")).Str("endpoint", cfg.Remote.Endpoint).Msg("Starting web API")

					return SetupServer(c.String("listen"), service)
				},
			},
		},
	}
}
