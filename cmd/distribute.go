package main

import (
	"fmt"
	"targets/internal/config"
	"targets/internal/distributor"
	"targets/internal/report"
	"targets/pkg/calendar"
	"targets/pkg/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// distributeCommand constructs the 'distribute' subcommand that computes a
// distribution and prints it as a table, CSV or JSON.
func distributeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "Distributes a target over the months of a date range",
		Example: "  targets distribute --start 2024-01-01 --end 2024-05-31 --target 5220 --exclude sunday,friday\n" +
			"  targets distribute --start 2024-01-01 --end 2024-12-31 --target 120000 --exclude sat,sun --mode weighted -o csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			target, _ := cmd.Flags().GetFloat64("target")
			exclude, _ := cmd.Flags().GetStringSlice("exclude")
			modeName, _ := cmd.Flags().GetString("mode")
			formatName, _ := cmd.Flags().GetString("output")

			r, err := calendar.ParseRange(start, end)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("exclude") {
				exclude = cfg.Distribution.ExcludedWeekdays
			}
			excluded, err := calendar.ParseExclusions(exclude...)
			if err != nil {
				return err
			}

			var mode domain.Mode
			if modeName != "" {
				if mode, err = domain.ParseMode(modeName); err != nil {
					return err
				}
			}

			format, err := report.ParseFormat(formatName)
			if err != nil {
				return err
			}

			// metrics are not scraped for one-shot runs
			d := getDistributor(cmd.Context(), cfg, prometheus.NewRegistry())
			res, err := d.Distribute(cmd.Context(), distributor.Request{
				Range:    r,
				Target:   target,
				Excluded: excluded,
				Mode:     mode,
			})
			if err != nil {
				return err
			}

			if err := report.Write(cmd.OutOrStdout(), format, res); err != nil {
				return fmt.Errorf("could not print result: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().String("start", "", "First date of the range (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "Last date of the range, inclusive (YYYY-MM-DD)")
	cmd.Flags().Float64("target", 0, "Annual target to distribute")
	cmd.Flags().StringSlice("exclude", nil, "Excluded weekdays, by name or number 0 (Sunday) to 6 (Saturday); defaults to the configured list")
	cmd.Flags().String("mode", "", "Allocation mode: literal or weighted; defaults to the configured mode")
	cmd.Flags().StringP("output", "o", "table", "Output format: table, csv or json")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}
