package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/olhovivo/config"
	"github.com/s0up4200/olhovivo/filter"
	"github.com/s0up4200/olhovivo/olhovivo"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *olhovivo.Client

	// Global flags
	outputFormat string
	filterExpr   string

	compiler = filter.NewCompiler()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "olhovivo",
	Short: "Query the SPTrans Olho Vivo API",
	Long: `olhovivo is a command line client for the SPTrans Olho Vivo API.

It searches São Paulo's bus lines, stops and corridors, shows real-time vehicle
positions and arrival forecasts, and exports the network map as KMZ.

The API token is read from the config file, SP_TRANS_API_KEY or OLHOVIVO_API_TOKEN.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: json or yaml (default from config)")
	rootCmd.PersistentFlags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to list results, e.g. 'item.Code == 1273' or 'hasText(item.Name, \"lapa\")'")
}

// initializeApp loads the configuration and logs in
func initializeApp(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	var err error
	client, err = olhovivo.NewClientContext(cmd.Context(), cfg.Session(), logger, cfg.ClientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create Olho Vivo client: %w", err)
	}

	return nil
}

// loadConfig loads the configuration and sets up the logger without logging in
func loadConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if cmd.Flags().Changed("output") {
		switch outputFormat {
		case "json", "yaml":
			cfg.Output.Format = outputFormat
		default:
			return fmt.Errorf("invalid output format: %s (must be 'json' or 'yaml')", outputFormat)
		}
	}

	return nil
}

// setupLogger configures the zerolog logger
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

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// compileFilter returns the --filter expression compiled, or nil when unset
func compileFilter() (*filter.Filter, error) {
	if strings.TrimSpace(filterExpr) == "" {
		return nil, nil
	}

	f, err := compiler.Compile(filterExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	return f, nil
}

// filterItems applies --filter to items
func filterItems[T any](items []T) ([]T, error) {
	f, err := compileFilter()
	if err != nil {
		return nil, err
	}

	matched, err := filter.Apply(f, items)
	if err != nil {
		return nil, err
	}

	if f != nil {
		logger.Debug().
			Str("filter", f.Expression()).
			Int("total", len(items)).
			Int("matched", len(matched)).
			Msg("Applied filter")
	}

	return matched, nil
}
