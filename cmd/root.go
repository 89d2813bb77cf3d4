package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/s0up4200/hackcheck/config"
	"github.com/s0up4200/hackcheck/filter"
	"github.com/s0up4200/hackcheck/hackcheck"
)

var (
	cfgFile  string
	debug    bool
	cfg      *config.Config
	logger   zerolog.Logger
	client   hackcheck.API
	filters  *filter.Manager
	jsonOut  bool
	logFiles []io.Closer
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hackcheck",
	Short: "Query the HackCheck breach lookup service",
	Long: `hackcheck searches the HackCheck breach database, checks whether an asset
has been exposed and manages asset and domain monitors.

The API key is read from the config file or the HACKCHECK_API_KEY
environment variable.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := executeContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// executeContext runs the command tree and releases the client and log
// files whether or not the command succeeded
func executeContext(ctx context.Context) error {
	defer shutdownApp()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print raw JSON instead of a summary")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(monitorsCmd)
	rootCmd.AddCommand(filtersCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the configuration and creates the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// version needs neither config nor credentials
	if cmd == versionCmd {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if debug {
		cfg.Logging.Level = "debug"
	}
	logger = setupLogger(cfg.Logging)

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	client, err = hackcheck.NewClient(cfg.HackCheck.APIKey, logger,
		hackcheck.WithBaseURL(cfg.HackCheck.BaseURL),
		hackcheck.WithTimeout(cfg.HackCheck.Timeout),
		hackcheck.WithConcurrency(cfg.HackCheck.Concurrency),
		hackcheck.WithUserAgent("hackcheck-cli/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create HackCheck client: %w", err)
	}

	logger.Debug().
		Str("base_url", cfg.HackCheck.BaseURL).
		Int("presets", len(cfg.Filter.Presets)).
		Msg("HackCheck client initialized")

	return nil
}

// shutdownApp releases the client and any open log files
func shutdownApp() error {
	var errs []error

	if client != nil {
		if err := client.Close(); err != nil {
			logger.Debug().Err(err).Msg("Failed to close HackCheck client")
			errs = append(errs, err)
		}
		client = nil
	}

	for _, c := range logFiles {
		if err := c.Close(); err != nil {
			logger.Debug().Err(err).Msg("Failed to close log file")
			errs = append(errs, err)
		}
	}
	logFiles = nil

	return errors.Join(errs...)
}

// setupLogger configures the zerolog logger. Console output is only
// colored when stderr is a terminal; a rotating JSON log file is added
// when logging.file is set.
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	var console io.Writer = os.Stderr
	if cfg.Format != "json" {
		console = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.Color || !isTerminal(os.Stderr),
		}
	}

	if cfg.File == "" {
		return zerolog.New(console).With().Timestamp().Logger()
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	}
	logFiles = append(logFiles, file)

	return zerolog.New(zerolog.MultiLevelWriter(console, file)).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
