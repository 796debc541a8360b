// Package cmd provides the CLI commands for solar-roof-map.
package cmd

import (
	"fmt"
	"os"

	"github.com/bbzsolar/solar-roof-map/internal/config"
	"github.com/bbzsolar/solar-roof-map/internal/dashboard"
	"github.com/bbzsolar/solar-roof-map/pkg/constants"
	"github.com/bbzsolar/solar-roof-map/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is stamped at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

var (
	cfgFile          string
	logLevel         string
	outputFormatFlag string
	outputFormat     string
	conf             *config.Configuration
	logger           *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "solar-roof-map",
	Short: "Estimate rooftop solar potential and manage BBZ Solar projects",
	Long: `solar-roof-map estimates the daily solar production of a roof, the number of
panels it fits and the payback period of the installation. It also serves the
BBZ Solar dashboard.

Examples:
  solar-roof-map estimate --lat -23.55 --lng -46.63 --area 32 --cost 32500
  solar-roof-map projects --status in_progress --sort energy
  solar-roof-map proposal document 1 --format txt
  solar-roof-map serve --server-config server-config.yaml`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", constants.DefaultConfigFile, "path to configuration file, or - to read it from stdin")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&outputFormatFlag, "output-format", "", "type of output override: pretty, csv, json")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(panelsCmd)
	rootCmd.AddCommand(roiCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(proposalCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the configuration, builds the logger and resolves the output
// format shared by every subcommand.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile == "-" {
		conf, err = config.LoadConfigurationFromReader(cmd.InOrStdin())
	} else {
		conf, err = config.LoadOrDefault(cfgFile)
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", cfgFile, err)
	}

	logger, err = initializeLogger(conf.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	outputFormat = conf.Output.Format
	if outputFormatFlag != "" {
		outputFormat = outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "cmd.setup"),
		)
	}
	return nil
}

func newStore() *dashboard.Store {
	return dashboard.NewStore(logger, dashboard.PricingFrom(conf.Calculation))
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "solar-roof-map version %s\n", Version)
	},
}

func fail(op string, err error) error {
	if logger != nil {
		logger.Error(err.Error(), zap.String("op", op))
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
