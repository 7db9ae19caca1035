package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/assistant/internal/assistant"
	"github.com/smileynet/assistant/internal/config"
	"github.com/smileynet/assistant/internal/contact"
	"github.com/smileynet/assistant/internal/logging"
	"github.com/smileynet/assistant/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals holds flags shared by every command.
type Globals struct {
	Config   string `help:"Extra config file, applied after the user and project files." type:"path"`
	LogFile  string `help:"Write diagnostic logs to this file." type:"path"`
	LogLevel string `help:"Log level: debug, info, warn or error."`
}

// CLI is the top-level command structure for assistant.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Chat    ChatCmd          `cmd:"" default:"withargs" help:"Start the interactive assistant (default)."`
	Exec    ExecCmd          `cmd:"" help:"Run commands from a script, one per line."`
}

// ChatCmd runs an interactive session on the terminal.
type ChatCmd struct {
	Plain   bool `help:"Use the line-oriented shell even on a terminal."`
	NoColor bool `help:"Disable colorized replies."`
}

// Run executes the chat command.
func (c *ChatCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	if c.Plain {
		cfg.Shell.Mode = config.ModePlain
	}
	if c.NoColor {
		cfg.Color.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("chat: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runSession(ctx, cfg, os.Stdin, os.Stdout)
}

// ExecCmd replays a script through the same dispatcher an interactive
// session uses. Only replies are printed.
type ExecCmd struct {
	Script string `arg:"" help:"Script file, or - for standard input."`
}

// Run executes the exec command.
func (e *ExecCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("exec: %w", err)
	}

	in, closeFn, err := openScript(e.Script)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	defer closeFn()

	return e.run(context.Background(), cfg, in, os.Stdout)
}

// run executes the script with the given streams, enabling testable wiring.
func (e *ExecCmd) run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	cfg.Shell.Mode = config.ModePlain
	cfg.Shell.Prompt = ""
	cfg.Shell.Greeting = ""
	return runSession(ctx, cfg, in, out)
}

// openScript opens path for reading; "-" means standard input.
func openScript(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// runSession wires a fresh address book, dispatcher and shell, and runs the
// shell to completion.
func runSession(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	book := contact.NewAddressBook()
	d := assistant.New(book, assistant.WithLogger(logger))
	sh := tui.NewShell(d, tui.Options{
		In:       in,
		Out:      out,
		Mode:     cfg.Shell.Mode,
		Prompt:   cfg.Shell.Prompt,
		Greeting: cfg.Shell.Greeting,
		Color:    cfg.Color,
	})

	logger.Info("session started", zap.String("mode", cfg.Shell.Mode), zap.String("version", version))
	err = sh.Run(ctx)
	logger.Info("session ended", zap.Int("contacts", book.Len()), zap.Error(err))
	return err
}

// loadConfig loads layered config from user and project paths, then the
// --config file, with env and flag overrides on top.
func (g *Globals) loadConfig() (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/assistant/config.yaml"),
		".assistant/config.yaml",
	}
	if g.Config != "" {
		if _, err := os.Stat(g.Config); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		paths = append(paths, g.Config)
	}

	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	return cfg, nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitInput   = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	// The session ended without an exit command.
	if errors.Is(err, tui.ErrInputClosed) || errors.Is(err, context.Canceled) {
		return exitInput
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("assistant"),
		kong.Description("An address book you talk to."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
	}
	os.Exit(exitCode(err))
}
