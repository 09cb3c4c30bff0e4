package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is fine.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigPath is the config file read when --config is not given.
	ConfigPath string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{ConfigPath: defaultConfigPath()}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	configPath := configFlag(args, m.ConfigPath)
	values, err := ReadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: check the JSON5 syntax of %s\n", configPath)
		return fmt.Errorf("failed to read config: %w", err)
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("grail"),
		kong.Description("Extract the Diablo II Holy Grail item catalog from the Diablo wiki."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Resolvers(ConfigResolver(values)),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'grail --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)
	if len(values) > 0 {
		deps.Logger.Debug("loaded config", "path", configPath)
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultConfigPath() string {
	if path := os.Getenv("GRAIL_CONFIG"); path != "" {
		return path
	}
	return "grail.json5"
}
