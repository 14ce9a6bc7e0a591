package tickets

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// PermuteArgs moves options that follow the positional arguments in front of
// them, so `tickets 北京 上海 2016-10-10 -g` parses like
// `tickets -g 北京 上海 2016-10-10`. Anything after "--" stays positional and
// command invocations are returned unchanged.
func PermuteArgs(app *cli.App, args []string) []string {
	if len(args) < 2 {
		return args
	}

	takesValue := map[string]bool{}
	for _, flag := range app.Flags {
		if _, boolean := flag.(*cli.BoolFlag); boolean {
			continue
		}
		for _, name := range flag.Names() {
			takesValue[name] = true
		}
	}

	var options, positionals, terminated []string

	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]

		switch {
		case arg == "--":
			terminated = rest[i:]
			i = len(rest)
		case len(arg) > 1 && arg[0] == '-':
			options = append(options, arg)

			name := strings.TrimLeft(arg, "-")
			if !strings.Contains(name, "=") && takesValue[name] && i+1 < len(rest) {
				i++
				options = append(options, rest[i])
			}
		default:
			if len(positionals) == 0 && isCommand(app, arg) {
				return args
			}
			positionals = append(positionals, arg)
		}
	}

	permuted := make([]string, 0, len(args))
	permuted = append(permuted, args[0])
	permuted = append(permuted, options...)
	if len(terminated) > 0 {
		permuted = append(permuted, "--")
		permuted = append(permuted, positionals...)
		permuted = append(permuted, terminated[1:]...)
	} else {
		permuted = append(permuted, positionals...)
	}

	return permuted
}

func isCommand(app *cli.App, name string) bool {
	return name == "help" || name == "h" || app.Command(name) != nil
}
