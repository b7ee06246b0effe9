package cmd

import (
	"context"
	"time"

	"github.com/isometry/token-monitor/internal/config"
	"github.com/isometry/token-monitor/internal/dashboard"
	"github.com/isometry/token-monitor/internal/models"
	"github.com/spf13/cobra"
)

func cmdTokens() *cobra.Command {
	var (
		filters models.TokenFilters
		page    int
		watch   bool
		output  string
	)
	cmd := &cobra.Command{
		Use:     "tokens",
		Aliases: []string{"t", "token"},
		Short:   "List the active tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if filters.Limit <= 0 {
				filters.Limit = config.UI.ItemsPerPage
			}
			if page > 1 {
				filters.Offset = (page - 1) * filters.Limit
			}
			r := renderer()
			list := func(ctx context.Context) error {
				tokens, err := a.client.ActiveTokens(ctx, filters)
				if err != nil {
					return err
				}
				if output != OutputTable {
					return printData(cmd.OutOrStdout(), tokens, output)
				}
				return r.RenderTokens(cmd.OutOrStdout(), &dashboard.Snapshot{Tokens: tokens.Tokens, TotalTokens: tokens.Total})
			}
			return runOrWatch(cmd, watch, config.Refresh.Tokens, list)
		},
	}
	cmd.Flags().IntVar(&filters.Tier, "tier", 0, "Only list tokens of this tier (1 = High, 2 = Normal)")
	cmd.Flags().Float64Var(&filters.MinLiquidity, "min-liquidity", 0, "Only list tokens with at least this liquidity in USD")
	cmd.Flags().IntVar(&filters.Limit, "limit", 0, "The page size (default ui.itemsPerPage)")
	cmd.Flags().IntVar(&page, "page", 1, "The page to list")
	cmd.Flags().StringVar(&filters.Sort, "sort", dashboard.DefaultSort, "Sort by this field")
	cmd.Flags().StringVar(&filters.Order, "order", dashboard.DefaultOrder, "Sort order, asc or desc")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Refresh the listing every refresh.tokens")
	outputFlag(cmd, &output, OutputTable)

	cmd.AddCommand(cmdTokenHistory())
	return cmd
}

func cmdTokenHistory() *cobra.Command {
	var (
		filters models.HistoryFilters
		output  string
	)
	cmd := &cobra.Command{
		Use:   "history ADDRESS",
		Short: "Show the recorded metrics of a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			history, err := a.client.TokenHistory(cmd.Context(), args[0], filters)
			if err != nil {
				return err
			}
			return printData(cmd.OutOrStdout(), history, output)
		},
	}
	cmd.Flags().StringVar(&filters.From, "from", "", "Start of the history window")
	cmd.Flags().StringVar(&filters.To, "to", "", "End of the history window")
	cmd.Flags().StringVar(&filters.Interval, "interval", "", "Aggregation interval, e.g. 5m or 1h")
	outputFlag(cmd, &output, OutputJSON)
	return cmd
}

// runOrWatch runs fn once, or until the command is interrupted when watch is set.
func runOrWatch(cmd *cobra.Command, watch bool, interval time.Duration, fn func(context.Context) error) error {
	ctx := cmd.Context()
	if !watch {
		return fn(ctx)
	}
	notifier := dashboard.NewNotifier(cmd.ErrOrStderr(), !config.Features.DisableNotifications)
	dashboard.Refresher{Logger: logger}.Run(ctx, interval, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			notifier.Error(err.Error())
			return err
		}
		return nil
	})
	return nil
}
