// Package cli wires the planner commands: flags, settings, logging and report output.
package cli

import (
	"fmt"
	"io"

	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/config"
	"github.com/rpgo/networth-planner/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options holds the flag values shared by the run commands
type options struct {
	configPath  string
	scale       string
	format      string
	outDir      string
	mode        string
	trials      int
	seed        int64
	concurrency int
	visibility  string
	logLevel    string
	debug       bool
}

// NewRootCommand builds the planner command tree. Flag defaults come from the
// PLANNER_* environment (and an optional .env file).
func NewRootCommand() *cobra.Command {
	settings := config.LoadSettings()
	opts := &options{}

	root := &cobra.Command{
		Use:           "planner",
		Short:         "Scenario cash-flow simulation and net worth projection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return settings.Validate()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "plan.yaml", "configuration file (YAML)")
	pf.StringVar(&opts.logLevel, "log-level", settings.LogLevel, "log level (debug, info, warn, error)")
	pf.BoolVar(&opts.debug, "debug", false, "log per-period calculation detail")

	root.AddCommand(
		newScenarioCommand(opts, settings),
		newProjectCommand(opts, settings),
		newValidateCommand(opts),
		newHistoryCommand(opts),
		newExampleCommand(),
		newFormatsCommand(),
	)
	return root
}

// addOutputFlags registers the flags every report-producing command takes
func addOutputFlags(cmd *cobra.Command, opts *options, settings *config.Settings) {
	f := cmd.Flags()
	f.StringVar(&opts.scale, "scale", "monthly", "aggregation scale (monthly, quarterly, yearly)")
	f.StringVarP(&opts.format, "format", "f", "console", "output format")
	f.StringVarP(&opts.outDir, "out", "o", settings.OutputDir, "directory for report files")
}

// newLogger returns a logrus logger writing to w at the configured level
func newLogger(w io.Writer, opts *options) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.logLevel, err)
	}
	if opts.debug {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	return logger, nil
}

// newEngine creates a calculation engine logging through logger
func newEngine(logger *logrus.Logger, opts *options) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logger)
	engine.Debug = opts.debug
	return engine
}

// emit prints console reports to stdout unless --out was given; every other format
// is written to a file whose path is printed.
func emit(cmd *cobra.Command, logger *logrus.Logger, report *output.Report, opts *options) error {
	if output.NormalizeFormatName(opts.format) == "console" && !cmd.Flags().Changed("out") {
		data, err := output.ConsoleFormatter{}.Format(report)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	path, err := output.GenerateReport(report, opts.format, opts.outDir)
	if err != nil {
		return err
	}
	logger.WithField("format", output.NormalizeFormatName(opts.format)).Infof("report written to %s", path)
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
