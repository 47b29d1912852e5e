package cli

import (
	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/config"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/internal/output"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newScenarioCommand(opts *options, settings *config.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Run the scenario month by month and report balances and cash flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, opts)
		},
	}
	addOutputFlags(cmd, opts, settings)
	cmd.Flags().StringVar(&opts.visibility, "visibility", "settled", "what balance conditions observe (settled, prior)")
	return cmd
}

func runScenario(cmd *cobra.Command, opts *options) error {
	logger, err := newLogger(cmd.ErrOrStderr(), opts)
	if err != nil {
		return err
	}
	scale, err := dateutil.ParseGranularity(opts.scale)
	if err != nil {
		return err
	}
	visibility, err := calculation.ParseConditionVisibility(opts.visibility)
	if err != nil {
		return err
	}

	cfg, err := config.NewInputParser().LoadFromFile(opts.configPath)
	if err != nil {
		return err
	}
	logger.WithField("config", opts.configPath).Debug("configuration loaded")

	run, err := newEngine(logger, opts).RunScenario(cmd.Context(), cfg, calculation.RunOptions{
		Scale:      scale,
		Visibility: visibility,
	})
	if err != nil {
		return err
	}
	return emit(cmd, logger, output.NewScenarioReport(run, cfg.Currency, scale), opts)
}

func newProjectCommand(opts *options, settings *config.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project net worth over the plan horizon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjection(cmd, opts)
		},
	}
	addOutputFlags(cmd, opts, settings)
	f := cmd.Flags()
	f.StringVar(&opts.mode, "mode", "", "projection mode (expected, sampled, monte-carlo); default from the configuration")
	f.IntVar(&opts.trials, "trials", settings.Trials, "monte carlo trials; 0 keeps the configured value")
	f.Int64Var(&opts.seed, "seed", settings.Seed, "random seed; 0 keeps the configured value")
	f.IntVar(&opts.concurrency, "concurrency", settings.Concurrency, "parallel monte carlo workers; 0 keeps the configured value")
	return cmd
}

func runProjection(cmd *cobra.Command, opts *options) error {
	logger, err := newLogger(cmd.ErrOrStderr(), opts)
	if err != nil {
		return err
	}
	scale, err := dateutil.ParseGranularity(opts.scale)
	if err != nil {
		return err
	}
	var mode domain.ProjectionMode
	if opts.mode != "" {
		if mode, err = domain.ParseProjectionMode(opts.mode); err != nil {
			return err
		}
	}

	cfg, err := config.NewInputParser().LoadFromFile(opts.configPath)
	if err != nil {
		return err
	}
	logger.WithField("config", opts.configPath).Debug("configuration loaded")

	run, err := newEngine(logger, opts).RunProjection(cmd.Context(), cfg, calculation.RunOptions{
		Scale:       scale,
		Mode:        mode,
		Trials:      opts.trials,
		Seed:        opts.seed,
		Concurrency: opts.concurrency,
	})
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"mode":   run.Result.Mode,
		"points": len(run.Result.Points),
	}).Info("projection complete")
	return emit(cmd, logger, output.NewProjectionReport(run, cfg.Plan, cfg.Currency, scale), opts)
}
