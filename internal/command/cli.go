package command

import (
	"context"
	"io"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/maxmcd/stackperm/internal/logger"
	"github.com/maxmcd/stackperm/internal/tracing"
	"github.com/mitchellh/go-wordwrap"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/trace"
)

var (
	commandHelpTemplate = `Usage: {{if .UsageText}}{{.UsageText}}{{else}}{{.HelpName}}{{if .VisibleFlags}} [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}{{end}}{{if .Description}}

Description:
   {{.Description | nindent 3 | trim}}{{end}}{{if .VisibleFlags}}

Options:{{range .VisibleFlags}}
   {{.}}{{end}}{{end}}
`

	appHelpTemplate = `Usage: {{.Usage}}
	{{.Description | nindent 3 | trim}}
Commands:{{range .VisibleCommands}}
	{{join .Names ", "}}{{"\t"}}{{.Usage}}{{end}}

Options:
	{{range $index, $option := .VisibleFlags}}{{if $index}}
	{{end}}{{$option}}{{end}}
`
)

var tracer trace.Tracer

func init() {
	tracer = tracing.Tracer("command")
}

func cliApp(stdout io.Writer) *cli.App {
	app := &cli.App{
		Name:    "stackperm",
		Usage:   "stackperm [--version] [--help] <command> [args]",
		Version: "0.1.0",
		Description: `
stackperm checks whether a sequence can be popped off a stack that is fed
another sequence in order. Run without a command to check the pair [1, 2, 3]
and [2, 1, 3].`,
		HideHelpCommand:       true,
		CustomAppHelpTemplate: appHelpTemplate,
		Writer:                stdout,
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 0 {
				return errors.Errorf("unknown command %q", c.Args().First())
			}
			_, span := tracer.Start(c.Context, "stackperm demo")
			defer span.End()
			return runDemo(c.App.Writer)
		},
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "Check a single push order and target order",
				UsageText: `
stackperm check --push <sequence> --target <sequence>

Sequences are comma separated integers, optionally wrapped in brackets. An
empty string is an empty sequence.

stackperm check --push 1,2,3 --target 2,1,3
stackperm check --push "[1, 2, 3]" --target "[3, 1, 2]" --verbose

Prints "true" if the target order can be produced by pushing the push order
onto a stack one element at a time and popping in between, "false"
otherwise. Sequences of different lengths are an error.
`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "push",
						Required: true,
						Usage:    "the order elements are pushed onto the stack",
					},
					&cli.StringFlag{
						Name:     "target",
						Required: true,
						Usage:    "the order elements should be popped off the stack",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "print every push and pop performed, and whatever is left on the stack",
					},
				},
				Action: func(c *cli.Context) error {
					_, span := tracer.Start(c.Context, "stackperm check")
					defer span.End()
					return runCheck(c.App.Writer, checkOptions{
						push:    c.String("push"),
						target:  c.String("target"),
						verbose: c.Bool("verbose"),
					})
				},
			},
			{
				Name:  "batch",
				Usage: "Check every case in a cases file",
				UsageText: `
stackperm batch [options] <cases.toml>

Cases files contain a list of named cases:

[[case]]
name = "swap first two"
push = [1, 2, 3]
target = [2, 1, 3]
want = true

Results are printed one per line in file order. The command fails if any
case has sequences of different lengths or doesn't match its "want" value.
`,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "jobs",
						Value: 4,
						Usage: "the number of cases that are checked at the same time",
					},
				},
				Action: func(c *cli.Context) error {
					ctx, span := tracer.Start(c.Context, "stackperm batch")
					defer span.End()
					if c.Args().Len() != 1 {
						_ = cli.ShowCommandHelp(c, "batch")
						return errors.New("batch takes exactly one cases file")
					}
					return runBatch(ctx, c.App.Writer, batchOptions{
						location: c.Args().First(),
						jobs:     c.Int("jobs"),
					})
				},
			},
		},
	}

	for _, c := range app.Commands {
		c.CustomHelpTemplate = commandHelpTemplate

		// Wrap the options help to 80 width. Requires knowledge of the longest
		// flag length.
		longest := 0
		for _, flag := range c.Flags {
			for _, name := range flag.Names() {
				if len(name) > longest {
					longest = len(name)
				}
			}
		}
		for _, flag := range c.Flags {
			switch c := flag.(type) {
			case *cli.BoolFlag:
				c.Usage = formatFlag(c.Usage, longest)
			case *cli.StringFlag:
				c.Usage = formatFlag(c.Usage, longest)
			case *cli.IntFlag:
				c.Usage = formatFlag(c.Usage, longest)
			}
		}
	}
	return app
}

// RunCLI runs the cli with os.Args
func RunCLI() {
	defer tracing.Stop()

	// Patch cli lib to remove bool default
	oldFlagStringer := cli.FlagStringer
	cli.FlagStringer = func(f cli.Flag) string {
		return strings.TrimSuffix(oldFlagStringer(f), " (default: false)")
	}

	app := cliApp(os.Stdout)
	log.SetOutput(ioutil.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		s := make(chan os.Signal, 1)
		signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
		<-s
		cancel()
	}()
	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Print(err)
		// Explicitly call stop since the Exit will not call the defer
		tracing.Stop()
		os.Exit(1)
	}
}

func formatFlag(usage string, longest int) string {
	return strings.ReplaceAll(
		wordwrap.WrapString(usage,
			uint(80-3-longest-3),
		), "\n", "\n\t")
}
