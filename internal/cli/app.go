// Package cli holds the plumbing shared by the social-post binaries:
// persistent flags, settings and .env loading, the result printer and exit
// handling.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/social-post/internal/config"
	"github.com/donaldgifford/social-post/internal/metrics"
	"github.com/donaldgifford/social-post/pkg/logger"
)

const (
	defaultEnvFile = ".env"
	pushTimeout    = 5 * time.Second
)

// App is the state every subcommand of one binary shares. It is populated
// by the root command's PersistentPreRunE.
type App struct {
	Name     string
	Settings *config.Settings
	Logger   *slog.Logger
	Env      config.Source
	Out      *Printer

	// Hint returns extra advice printed under an error, or "".
	Hint func(error) string

	Stderr io.Writer

	flags *viper.Viper
}

// New creates an App for the binary called name.
func New(name string) *App {
	return &App{
		Name:     name,
		Settings: config.Default(),
		Logger:   logger.Discard(),
		Env:      config.NewEnvSource(),
		Out:      NewPrinter(os.Stdout, FormatText),
		Stderr:   os.Stderr,
		flags:    viper.New(),
	}
}

// DefaultConfigPath is the settings file read when --config is not given.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".social-post.yaml")
}

// Bind registers the persistent flags on root and installs the setup hook.
func (a *App) Bind(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.String("config", "", "settings file (default $HOME/.social-post.yaml)")
	pf.String("env-file", "", "extra .env file to load (never overrides set variables)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format (text, json)")
	pf.String("output", FormatText, "output format (text, json)")

	cobra.CheckErr(a.flags.BindPFlag("config", pf.Lookup("config")))
	cobra.CheckErr(a.flags.BindPFlag("env_file", pf.Lookup("env-file")))
	cobra.CheckErr(a.flags.BindPFlag("logging.level", pf.Lookup("log-level")))
	cobra.CheckErr(a.flags.BindPFlag("logging.format", pf.Lookup("log-format")))
	cobra.CheckErr(a.flags.BindPFlag("output", pf.Lookup("output")))

	root.SilenceUsage = true
	root.SilenceErrors = true
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.setup(cmd)
	}
}

func (a *App) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(defaultEnvFile, a.flags.GetString("env_file")); err != nil {
		return err
	}

	settings, err := a.loadSettings()
	if err != nil {
		return err
	}
	if lvl := a.flags.GetString("logging.level"); lvl != "" {
		settings.Logging.Level = lvl
	}
	if f := a.flags.GetString("logging.format"); f != "" {
		settings.Logging.Format = f
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	a.Settings = settings

	out, err := NewPrinterFor(cmd.OutOrStdout(), a.flags.GetString("output"))
	if err != nil {
		return err
	}
	a.Out = out

	a.Logger = logger.NewWithWriter(a.Stderr, settings.Logging.Level, settings.Logging.Format)
	a.Env = config.NewEnvSource()
	return nil
}

func (a *App) loadSettings() (*config.Settings, error) {
	if path := a.flags.GetString("config"); path != "" {
		return config.Load(path)
	}
	if path := DefaultConfigPath(); path != "" {
		return config.LoadOptional(path)
	}
	return config.Default(), nil
}

// HTTPClient returns a client with the configured timeout.
func (a *App) HTTPClient() *http.Client {
	return &http.Client{Timeout: a.Settings.HTTP.Timeout}
}

// Run executes root under a context canceled by SIGINT or SIGTERM, pushes
// metrics when configured, prints any error to stderr and returns the
// process exit code.
func (a *App) Run(root *cobra.Command, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if args != nil {
		root.SetArgs(args)
	}
	err := root.ExecuteContext(ctx)

	a.pushMetrics()

	if err != nil {
		a.printError(err)
		return 1
	}
	return 0
}

// Execute is Run with os.Args, exiting on failure.
func (a *App) Execute(root *cobra.Command) {
	if code := a.Run(root, nil); code != 0 {
		os.Exit(code)
	}
}

func (a *App) printError(err error) {
	fmt.Fprintf(a.Stderr, "Error: %v\n", err)

	var missing *config.MissingEnvError
	if errors.As(err, &missing) {
		fmt.Fprintln(a.Stderr, "Set them in the environment or in a .env file (see --env-file).")
	}
	if a.Hint != nil {
		if hint := a.Hint(err); hint != "" {
			fmt.Fprintln(a.Stderr, hint)
		}
	}
}

func (a *App) pushMetrics() {
	m := a.Settings.Metrics
	if m.PushgatewayURL == "" {
		return
	}
	job := m.Job
	if job == "" {
		job = a.Name
	}

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if err := metrics.Push(ctx, m.PushgatewayURL, job); err != nil {
		a.Logger.Warn("pushing metrics", "error", err)
	}
}
