package main

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/mcncl/jsonmatch"
	"github.com/mcncl/jsonmatch/internal/config"
	"github.com/mcncl/jsonmatch/internal/errors" // Custom errors package
	"github.com/mcncl/jsonmatch/internal/expectation"
	"github.com/mcncl/jsonmatch/internal/generator"
	"github.com/mcncl/jsonmatch/internal/models"
	"github.com/mcncl/jsonmatch/internal/parser"
)

// Version information
const (
	Version = "0.1.0"
)

// Exit statuses
const (
	exitOK       = 0
	exitMismatch = 1
	exitError    = 2
)

// CLI defines the command-line interface
type CLI struct {
	Config  string           `help:"Path to a config file. Defaults to the nearest .jsonmatch.yml." type:"path"`
	Color   string           `help:"When to color the output: auto, always or never."`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Match    MatchCmd    `cmd:"" help:"Compare a JSON document with an expectation file."`
	Snapshot SnapshotCmd `cmd:"" help:"Write an expectation file that matches a JSON document."`
}

// MatchCmd compares a document against an expectation file
type MatchCmd struct {
	Expectation string `help:"Path to the YAML expectation file." short:"e" required:"" type:"path"`
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Quiet       bool   `help:"Only report the result through the exit status." short:"q"`
}

// SnapshotCmd writes an expectation matching a document
type SnapshotCmd struct {
	Input  string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output YAML file. If not specified, writes to stdout." short:"o" type:"path"`
	Strict bool   `help:"Reject fields the snapshot does not list."`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *slog.Logger
	Styler jsonmatch.Styler

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type exitStatus int

// run executes the command line in args and returns the exit status
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (status int) {
	var cli CLI
	app, err := kong.New(&cli,
		kong.Name("jsonmatch"),
		kong.Description("Compare JSON documents with structural expectations"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("jsonmatch version %s", Version)},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exitStatus(code)) }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitError
	}

	// --help and --version end the run through kong's exit hook
	defer func() {
		if r := recover(); r != nil {
			code, ok := r.(exitStatus)
			if !ok {
				panic(r)
			}
			status = int(code)
		}
	}()

	kctx, err := app.Parse(args)
	if err != nil {
		app.Errorf("%s", err)
		return exitError
	}

	ctx, err := newContext(&cli, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		return exitError
	}

	if err := kctx.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		if stderrors.Is(err, errors.ErrMismatch) {
			return exitMismatch
		}
		fmt.Fprintf(stderr, "\nFor help, run: jsonmatch --help\n")
		return exitError
	}
	return exitOK
}

// newContext resolves configuration, logging and styling for a run
func newContext(cli *CLI, stdin io.Reader, stdout, stderr io.Writer) (*Context, error) {
	configPath := cli.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, cli.Color, cli.Debug)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cfg.Dev.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if configPath != "" {
		logger.Debug("loaded config", "path", configPath, "color", cfg.Color)
	}

	return &Context{
		Config: cfg,
		Logger: logger,
		Styler: stylerFor(cfg.Color, stdout),
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}, nil
}

// stylerFor picks ANSI or plain output for the color mode and destination
func stylerFor(mode config.ColorMode, w io.Writer) jsonmatch.Styler {
	switch mode {
	case config.ColorAlways:
		return jsonmatch.NewANSIStyler(true)
	case config.ColorNever:
		return jsonmatch.PlainStyler{}
	}

	if os.Getenv("NO_COLOR") != "" {
		return jsonmatch.PlainStyler{}
	}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return jsonmatch.NewANSIStyler(true)
	}
	return jsonmatch.PlainStyler{}
}

// Run loads the expectation, matches the input and prints the visualization
func (c *MatchCmd) Run(ctx *Context) error {
	loader := expectation.NewLoader(expectation.Options{
		IgnoreExtraFields:       ctx.Config.Objects.IgnoreExtraFields,
		ElideIgnoredFieldValues: ctx.Config.Objects.ElideIgnoredFieldValues,
	})
	m, err := loader.LoadFile(c.Expectation)
	if err != nil {
		return err
	}
	ctx.Logger.Debug("loaded expectation", "path", c.Expectation)

	v, err := readInput(ctx, c.Input)
	if err != nil {
		return err
	}

	result := m.Match(v)
	ctx.Logger.Debug("matched document", "input", inputName(c.Input), "match", result.IsMatch())

	if !c.Quiet {
		rendered := result.Visualize(jsonmatch.VisualizationContext{Styler: ctx.Styler})
		if _, err := fmt.Fprintln(ctx.Stdout, rendered); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
	}

	if !result.IsMatch() {
		return errors.NewMismatchError(fmt.Sprintf("%s does not match %s", inputName(c.Input), filepath.Base(c.Expectation)))
	}
	return nil
}

// Run writes the snapshot of the input document
func (c *SnapshotCmd) Run(ctx *Context) error {
	v, err := readInput(ctx, c.Input)
	if err != nil {
		return err
	}

	g := generator.NewGenerator()
	g.Strict = c.Strict
	if c.Input != "" {
		g.Header = fmt.Sprintf("Snapshot of %s", filepath.Base(c.Input))
	}
	out, err := g.Generate(v)
	if err != nil {
		return err
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, out, 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", c.Output), err)
		}
		ctx.Logger.Debug("wrote snapshot", "path", c.Output, "bytes", len(out))
		fmt.Fprintf(ctx.Stderr, "Expectation written to %s\n", c.Output)
		return nil
	}

	if _, err := ctx.Stdout.Write(out); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInput reads JSON from file or stdin
func readInput(ctx *Context, path string) (models.Value, error) {
	if path != "" {
		ctx.Logger.Debug("reading input", "path", path)
		return parser.ParseFile(path)
	}

	// A terminal on stdin means nothing was piped in
	if f, ok := ctx.Stdin.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return models.Value{}, errors.NewInputError("failed to access stdin", err)
		}
		if info.Mode()&os.ModeCharDevice != 0 {
			return models.Value{}, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	data, err := io.ReadAll(ctx.Stdin)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return models.Value{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	ctx.Logger.Debug("reading input", "path", "stdin", "bytes", len(data))

	return parser.ParseBytes(data)
}

func inputName(path string) string {
	if path == "" {
		return "stdin"
	}
	return filepath.Base(path)
}
