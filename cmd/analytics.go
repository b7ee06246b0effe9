package cmd

import (
	"github.com/spf13/cobra"
)

func cmdAnalytics() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Run analyses on the collected token data",
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", OutputJSON, "Output format. One of: json, yaml")

	var (
		target    string
		variables []string
	)
	correlations := &cobra.Command{
		Use:   "correlations",
		Short: "Correlate variables against a target metric",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			result, err := a.client.Correlations(cmd.Context(), target, variables)
			if err != nil {
				return err
			}
			return printData(cmd.OutOrStdout(), result, output)
		},
	}
	correlations.Flags().StringVar(&target, "target", "", "The target metric")
	correlations.Flags().StringSliceVar(&variables, "variables", nil, "The variables to correlate")
	_ = correlations.MarkFlagRequired("target")

	var (
		strategy   string
		periodDays int
	)
	backtest := &cobra.Command{
		Use:   "backtest",
		Short: "Backtest a trading strategy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			result, err := a.client.Backtest(cmd.Context(), strategy, periodDays)
			if err != nil {
				return err
			}
			return printData(cmd.OutOrStdout(), result, output)
		},
	}
	backtest.Flags().StringVar(&strategy, "strategy", "", "The strategy to backtest")
	backtest.Flags().IntVar(&periodDays, "days", 30, "The backtest period in days")
	_ = backtest.MarkFlagRequired("strategy")

	signals := &cobra.Command{
		Use:   "signals",
		Short: "Show the live trading signals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			result, err := a.client.Signals(cmd.Context())
			if err != nil {
				return err
			}
			return printData(cmd.OutOrStdout(), result, output)
		},
	}

	cmd.AddCommand(correlations, backtest, signals)
	return cmd
}
