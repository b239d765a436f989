package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gorebar/internal/config"
	"github.com/alexiusacademia/gorebar/internal/logging"
	"github.com/alexiusacademia/gorebar/internal/metrics"
	"github.com/alexiusacademia/gorebar/internal/version"
)

var (
	configFile   string
	dbPath       string
	scenarioFile string
	verbose      bool
	logJSON      bool
	metricsFile  string

	cfg        *config.Config
	logger     = zap.NewNop()
	runMetrics *metrics.Metrics
)

var rootCmd = &cobra.Command{
	Use:   "gorebar",
	Short: "D-wall Reinforcement Layout Tool",
	Long: `gorebar - Go Diaphragm Wall Rebar Layout

A CLI tool that lays out the reinforcement of diaphragm wall panels
in a gorebar model document.

This tool helps detailers:
  - Create lapped main bar layers on both wall faces
  - Create, copy and mirror EX-links
  - Copy bar layers at a fixed spacing
  - Record bar unit weights and export bar schedules
  - Plot bar layouts in section, elevation or plan

Every bar and every copy step is written in its own transaction.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gorebar v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Diaphragm Wall Rebar Layout                          ║")
		fmt.Println("  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool that lays out the reinforcement of diaphragm")
		fmt.Println("  wall panels in a gorebar model document.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Lapped main bar layers with staggered splices")
		fmt.Println("    • Five-leg EX-links with inclined return")
		fmt.Println("    • Per-bar transactions, copies and mirrors")
		fmt.Println("    • Bar schedules in XLSX and PDF")
		fmt.Println()
		fmt.Println("  Use 'gorebar --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./gorebar.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Model document path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&scenarioFile, "scenario", "", "Scenario YAML file (defaults built in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log as JSON")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus textfile metrics here")
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Database = dbPath
	}
	if flags.Changed("scenario") {
		cfg.Scenario = scenarioFile
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = logJSON
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = metricsFile
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logger, err = logging.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return err
	}
	runMetrics = metrics.New()
	return nil
}

func teardown() {
	if cfg != nil && cfg.MetricsFile != "" && runMetrics != nil {
		if err := runMetrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics", zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
	}
	_ = logger.Sync()
}
