package tickets

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/kr/pretty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tickets/pkg/config"
	"github.com/travigo/tickets/pkg/lookup"
	"github.com/travigo/tickets/pkg/railapi"
	"github.com/travigo/tickets/pkg/table"
	"github.com/travigo/tickets/pkg/trains"
	"github.com/urfave/cli/v2"
	"golang.org/x/net/html/charset"
)

var typeFlags = []struct {
	code  trains.TypeCode
	usage string
}{
	{code: trains.TypeCodeHighSpeed, usage: "高铁"},
	{code: trains.TypeCodeBullet, usage: "动车"},
	{code: trains.TypeCodeExpress, usage: "特快"},
	{code: trains.TypeCodeFast, usage: "快速"},
	{code: trains.TypeCodeDirect, usage: "直达"},
}

func NewApp() *cli.App {
	flags := []cli.Flag{}
	for _, typeFlag := range typeFlags {
		flags = append(flags, &cli.BoolFlag{
			Name:  typeFlag.code.String(),
			Usage: typeFlag.usage,
		})
	}

	flags = append(flags,
		&cli.StringFlag{
			Name:    "config",
			Usage:   "path to the YAML config file",
			EnvVars: []string{"TICKETS_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "color",
			Usage: "colorize output: auto, always or never",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colored output",
		},
		&cli.StringFlag{
			Name:  "where",
			Usage: "only show trips matching an expression, e.g. 'seats.ze != \"无\"'",
		},
		&cli.StringFlag{
			Name:  "input-encoding",
			Usage: "character encoding of <from> and <to>, e.g. gbk",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "log debug output and dump the matching trips",
		},
	)

	return &cli.App{
		Name:                   "tickets",
		Usage:                  "命令行火车票查看器",
		ArgsUsage:              "<from> <to> <date>",
		UsageText:              "tickets [-gdtkz] <from> <to> <date>\n\ntickets 北京 上海 2016-10-10\ntickets -dg 成都 南京 2016-10-10\ntickets 桂林 宜昌 2016-10-10 -k\ntickets stations update",
		UseShortOptionHandling: true,
		Flags:                  flags,
		Commands:               []*cli.Command{stationsCommand()},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				log.Logger = log.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.Args().Len() != 3 {
		cli.ShowAppHelp(c)
		return cli.Exit("expected <from> <to> <date>", 2)
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if c.IsSet("color") {
		cfg.Color = c.String("color")
	}
	if c.Bool("no-color") {
		cfg.Color = config.ColorNever
	}
	if c.IsSet("input-encoding") {
		cfg.InputEncoding = c.String("input-encoding")
	}

	from, err := decodeArgument(c.Args().Get(0), cfg.InputEncoding)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	to, err := decodeArgument(c.Args().Get(1), cfg.InputEncoding)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	request := lookup.Request{
		From:    from,
		To:      to,
		Date:    c.Args().Get(2),
		Options: selectedTypes(c),
	}

	if whereSource := c.String("where"); whereSource != "" {
		request.Where, err = trains.CompileWhere(whereSource)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	service, err := lookup.NewService(cfg)
	if err != nil {
		return err
	}

	trips, err := service.Resolve(c.Context, request)
	if err != nil {
		return cli.Exit(userMessage(err), 1)
	}

	if c.Bool("debug") {
		collected := slices.Collect(trips)
		pretty.Fprintf(c.App.ErrWriter, "%# v\n", collected)
		trips = slices.Values(collected)
	}

	renderer := table.NewRenderer(table.Sink{
		Out:          c.App.Writer,
		ColorEnabled: cfg.ColorEnabled(outputFile(c)),
	})

	return renderer.Render(trains.Header, trains.FormatAll(trips))
}

func selectedTypes(c *cli.Context) trains.OptionSet {
	var codes []trains.TypeCode
	for _, typeFlag := range typeFlags {
		if c.Bool(typeFlag.code.String()) {
			codes = append(codes, typeFlag.code)
		}
	}

	return trains.NewOptionSet(codes...)
}

func decodeArgument(argument string, encodingLabel string) (string, error) {
	if encodingLabel == "" {
		return argument, nil
	}

	encoding, _ := charset.Lookup(encodingLabel)
	if encoding == nil {
		return "", fmt.Errorf("unknown input encoding %q", encodingLabel)
	}

	return encoding.NewDecoder().String(argument)
}

func userMessage(err error) string {
	var rejection *railapi.RejectionError

	switch {
	case errors.Is(err, railapi.ErrTransport):
		log.Debug().Err(err).Msg("Schedule query failed")
		return "Download data failed!"
	case errors.As(err, &rejection):
		return rejection.Message
	default:
		return err.Error()
	}
}

func outputFile(c *cli.Context) *os.File {
	if file, ok := c.App.Writer.(*os.File); ok {
		return file
	}

	return nil
}
