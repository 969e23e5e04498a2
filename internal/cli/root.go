// Package cli provides the command-line interface for the payoff calculator.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"options-payoff/internal/config"
	"options-payoff/internal/logging"
	"options-payoff/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-06-01"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.Store
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize history store if enabled
	if cfg.History.Enabled {
		historyStore, err := store.NewSQLiteStore(cfg.History.DBPath)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize history store, recording disabled")
		} else {
			app.Store = historyStore
			logger.Debug().Str("path", cfg.History.DBPath).Msg("History store initialized")
		}
	}

	rootCmd := &cobra.Command{
		Use:   "payoff",
		Short: "Options strategy profit/loss calculator",
		Long: `Options Payoff Calculator computes expiration profit/loss profiles
for multi-leg option strategies.

It evaluates ad-hoc leg lists and a catalog of named strategy presets,
renders ASCII payoff diagrams, records evaluation history, and serves
the same engine over an HTTP API.

Use 'payoff help <command>' for more information about a command.
Use 'payoff examples' to see common workflows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle debug flag
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/options-payoff)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Add all command groups
	addCoreCommands(rootCmd, app)
	addEvalCommands(rootCmd, app)
	addStrategyCommands(rootCmd, app)
	addHistoryCommands(rootCmd, app)
	addServerCommands(rootCmd, app)
	addHelpCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := app.NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Options Payoff Calculator v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := app.NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Engine Configuration")
	output.Printf("  Step:            %.2f\n", cfg.Engine.Step)
	output.Printf("  Range Padding:   %.1f%%\n", cfg.Engine.RangePaddingPercent)
	output.Println()

	output.Bold("Chart Configuration")
	output.Printf("  Width:           %d\n", cfg.Chart.Width)
	output.Printf("  Height:          %d\n", cfg.Chart.Height)
	output.Printf("  Color:           %v\n", cfg.UI.ColorEnabled)
	output.Println()

	output.Bold("History Configuration")
	output.Printf("  Enabled:         %v\n", cfg.History.Enabled)
	output.Printf("  Database:        %s\n", cfg.History.DBPath)
	output.Println()

	output.Bold("Server Configuration")
	output.Printf("  Address:         %s\n", cfg.Server.Addr())
	output.Println()

	output.Bold("Logging Configuration")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  Console:         %v\n", cfg.Logging.Console)
	output.Printf("  File:            %v\n", cfg.Logging.File)
	output.Printf("  File Path:       %s\n", cfg.Logging.FilePath)

	return nil
}
