package cmd

import (
	"context"

	"github.com/isometry/token-monitor/internal/api"
	"github.com/isometry/token-monitor/internal/config"
	"github.com/isometry/token-monitor/internal/dashboard"
	"github.com/spf13/cobra"
)

func cmdStats() *cobra.Command {
	var (
		watch  bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the system statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			r := renderer()
			show := func(ctx context.Context) error {
				stats, err := a.client.SystemStats(ctx)
				if err != nil {
					return err
				}
				if output != OutputTable {
					return printData(cmd.OutOrStdout(), stats, output)
				}
				return r.RenderStats(cmd.OutOrStdout(), &dashboard.Snapshot{Stats: *stats})
			}
			return runOrWatch(cmd, watch, config.Refresh.Stats, show)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Refresh the statistics every refresh.stats")
	outputFlag(cmd, &output, OutputTable)

	cmd.AddCommand(cmdTopPerformers())
	return cmd
}

func cmdTopPerformers() *cobra.Command {
	var period, output string
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the top performing tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			top, err := a.client.TopPerformers(cmd.Context(), period)
			if err != nil {
				return err
			}
			return printData(cmd.OutOrStdout(), top, output)
		},
	}
	cmd.Flags().StringVar(&period, "period", api.DefaultPerformersPeriod, "The ranking period, e.g. 1h or 24h")
	outputFlag(cmd, &output, OutputJSON)
	return cmd
}
