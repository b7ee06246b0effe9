package cmd

import (
	"context"
	"fmt"

	"github.com/isometry/token-monitor/internal/config"
	"github.com/isometry/token-monitor/internal/dashboard"
	"github.com/isometry/token-monitor/internal/format"
	"github.com/isometry/token-monitor/internal/models"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var dashboardFilters models.TokenFilters

func dashboardFlags(fs *pflag.FlagSet) {
	fs.IntVar(&dashboardFilters.Tier, "tier", 0, "Only show tokens of this tier (1 = High, 2 = Normal)")
	fs.StringVar(&dashboardFilters.Sort, "sort", dashboard.DefaultSort, "Sort the active tokens by this field")
	fs.Float64Var(&dashboardFilters.MinLiquidity, "min-liquidity", 0, "Only show tokens with at least this liquidity in USD")
}

func cmdDashboard() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"d", "dash"},
		Short:   "Render the dashboard and refresh it periodically",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger = logger.With("mode", config.ModeDashboard)
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			opts := []dashboard.Option{}
			archiver, err := a.archiver()
			if err != nil {
				return err
			}
			if archiver != nil {
				opts = append(opts, dashboard.WithArchiver(archiver))
			}
			loader := a.loader(opts...)
			r := renderer()
			notifier := dashboard.NewNotifier(cmd.ErrOrStderr(), !config.Features.DisableNotifications)

			refresh := func(ctx context.Context) error {
				notifier.Info("Loading dashboard...")
				snapshot, err := loader.Load(ctx, dashboardFilters)
				if err != nil {
					notifier.Error("Failed to load dashboard: " + err.Error())
					return err
				}
				if _, err = fmt.Fprintf(cmd.OutOrStdout(), "\n# Token monitor (%s)\n\n", format.Clock(snapshot.TakenAt)); err != nil {
					return err
				}
				if err = r.Render(cmd.OutOrStdout(), snapshot); err != nil {
					return errors.Wrap(err, "failed to render dashboard")
				}
				notifier.Success("Dashboard loaded successfully")
				return nil
			}

			if config.Features.DisableAutoRefresh {
				return refresh(ctx)
			}
			logger.Info("auto-refresh enabled", "interval", config.Refresh.Dashboard.String())
			dashboard.Refresher{Logger: logger.With("component", "refresher")}.Run(ctx, config.Refresh.Dashboard, refresh)
			return nil
		},
	}
	dashboardFlags(cmd.Flags())
	return cmd
}
