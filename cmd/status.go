package cmd

import (
	"context"
	"encoding/json"

	"github.com/isometry/token-monitor/internal/api"
	"github.com/isometry/token-monitor/internal/config"
	"github.com/isometry/token-monitor/internal/dashboard"
	"github.com/spf13/cobra"
)

func cmdStatus() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the status of the monitoring backend",
	}
	cmd.AddCommand(
		cmdWorkflows(),
		cmdRawStatus("dmb", "Show the status of the DMB blocks", (*api.Client).DMB),
		cmdRawStatus("health", "Show the health report", (*api.Client).Health),
	)
	return cmd
}

func cmdWorkflows() *cobra.Command {
	var (
		watch  bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "workflows",
		Short: "Show the status of the workflows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			r := renderer()
			show := func(ctx context.Context) error {
				status, err := a.client.Workflows(ctx)
				if err != nil {
					return err
				}
				if output != OutputTable {
					return printData(cmd.OutOrStdout(), status, output)
				}
				return r.RenderWorkflows(cmd.OutOrStdout(), &dashboard.Snapshot{Workflows: status.Workflows})
			}
			return runOrWatch(cmd, watch, config.Refresh.Workflows, show)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Refresh the status every refresh.workflows")
	outputFlag(cmd, &output, OutputTable)
	return cmd
}

func cmdRawStatus(use, short string, call func(*api.Client, context.Context) (json.RawMessage, error)) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			data, err := call(a.client, cmd.Context())
			if err != nil {
				return err
			}
			return printData(cmd.OutOrStdout(), data, output)
		},
	}
	outputFlag(cmd, &output, OutputJSON)
	return cmd
}
