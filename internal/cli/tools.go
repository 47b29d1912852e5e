package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/config"
	"github.com/rpgo/networth-planner/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var hundred = decimal.NewFromInt(100)

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration file without running it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(opts.configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s is valid (currency %s)\n", opts.configPath, cfg.Currency)
			if cfg.Scenario != nil {
				fmt.Fprintf(out, "  scenario %q: %d events, %s to %s\n", cfg.Scenario.Name, len(cfg.Scenario.Events), cfg.Scenario.StartDate, cfg.Scenario.EndDate)
			}
			if cfg.Plan != nil {
				fmt.Fprintf(out, "  plan: %d categories over %d years from %s\n", len(cfg.Plan.CategoryAssumptions), cfg.Plan.TimeHorizonYears, cfg.Plan.StartDate)
			}
			return nil
		},
	}
}

func newHistoryCommand(opts *options) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Summarize the historical return series in a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), opts)
			if err != nil {
				return err
			}
			history, err := calculation.LoadReturnHistory(dir)
			if err != nil {
				return err
			}
			for _, issue := range history.ValidateDataQuality() {
				logger.Warn(issue)
			}

			names := make([]string, 0, len(history.Series))
			for name := range history.Series {
				names = append(names, name)
			}
			sort.Strings(names)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-16s %9s %7s %10s %10s %10s\n", "Series", "Years", "Count", "Mean", "Median", "StdDev")
			for _, name := range names {
				s := history.Series[name]
				st := s.Statistics
				fmt.Fprintf(out, "%-16s %4d-%4d %7d %10s %10s %10s\n", name, s.MinYear, s.MaxYear, st.Count,
					output.FormatPercentage(st.Mean.Mul(hundred)), output.FormatPercentage(st.Median.Mul(hundred)), output.FormatPercentage(st.StdDev.Mul(hundred)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "data/returns", "directory of <series>.csv files")
	return cmd
}

func newExampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example [file]",
		Short: "Write an example configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "example_config.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			parser := config.NewInputParser()
			if err := parser.SaveConfiguration(parser.CreateExampleConfiguration(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "example configuration written to %s\n", path)
			return nil
		},
	}
}

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the available output formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "formats: %s\n", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintf(out, "aliases: %s\n", strings.Join(output.AvailableFormatAliases(), ", "))
		},
	}
}
