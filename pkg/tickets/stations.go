package tickets

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/tickets/pkg/config"
	"github.com/travigo/tickets/pkg/lookup"
	"github.com/travigo/tickets/pkg/railapi"
	"github.com/travigo/tickets/pkg/stations"
	"github.com/urfave/cli/v2"
)

func stationsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stations",
		Usage: "Manage the station table",
		Subcommands: []*cli.Command{
			{
				Name:  "update",
				Usage: "download the full station table from the ticketing service",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "where to write station_name.js (default: user cache directory)",
					},
				},
				Action: updateStations,
			},
			{
				Name:      "find",
				Usage:     "print the code a station name resolves to",
				ArgsUsage: "<name>",
				Action:    findStation,
			},
		},
	}
}

func updateStations(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	output := c.String("output")
	if output == "" {
		output = stations.CachePath()
	}
	if output == "" {
		return cli.Exit("no user cache directory, pass --output", 1)
	}
	if !strings.EqualFold(filepath.Ext(output), ".js") {
		return cli.Exit(fmt.Sprintf("station table output %s must end in .js", output), 1)
	}

	body, err := railapi.NewClient(cfg.Remote).FetchStationNames(c.Context)
	if err != nil {
		return cli.Exit(userMessage(err), 1)
	}

	directory, err := stations.ParseStationNames(bytes.NewReader(body))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := writeFileAtomic(output, body); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	log.Info().Str("path", output).Int("stations", directory.Len()).Msg("Updated station table")
	fmt.Fprintf(c.App.Writer, "%d stations written to %s\n", directory.Len(), output)

	return nil
}

func findStation(c *cli.Context) error {
	if c.Args().Len() != 1 {
		cli.ShowSubcommandHelp(c)
		return cli.Exit("expected <name>", 2)
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	name, err := decodeArgument(c.Args().First(), cfg.InputEncoding)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	directory, err := stations.LoadConfigured(cfg.Stations)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	code, found := directory.Lookup(name)
	if !found {
		return cli.Exit((&lookup.StationNotFoundError{Name: name}).Error(), 1)
	}

	fmt.Fprintln(c.App.Writer, code)

	return nil
}

func writeFileAtomic(path string, data []byte) error {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return err
	}

	temp, err := os.CreateTemp(directory, ".station_name-*")
	if err != nil {
		return err
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}

	return os.Rename(temp.Name(), path)
}
