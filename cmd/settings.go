package cmd

import (
	"github.com/spf13/cobra"
)

func cmdSettings() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"config"},
		Short:   "Read, update and test the backend settings",
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", OutputJSON, "Output format. One of: json, yaml")

	var category string
	get := &cobra.Command{
		Use:   "get",
		Short: "Show the backend settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			settings, err := a.client.GetSettings(cmd.Context(), category)
			if err != nil {
				return err
			}
			return printData(cmd.OutOrStdout(), settings, output)
		},
	}
	get.Flags().StringVar(&category, "category", "", "Only show this category")

	set := &cobra.Command{
		Use:   "set CATEGORY KEY VALUE",
		Short: "Update a backend setting. VALUE is parsed as JSON when possible",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			result, err := a.client.UpdateSetting(cmd.Context(), args[0], args[1], parseValue(args[2]))
			if err != nil {
				return err
			}
			return printData(cmd.OutOrStdout(), result, output)
		},
	}

	test := &cobra.Command{
		Use:   "test CATEGORY KEY",
		Short: "Ask the backend to validate a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			result, err := a.client.TestSetting(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printData(cmd.OutOrStdout(), result, output)
		},
	}

	cmd.AddCommand(get, set, test)
	return cmd
}
