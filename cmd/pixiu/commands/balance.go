package commands

import "github.com/spf13/cobra"

func debtsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "debts",
		Short: "List debts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := e.client.GetDebtList(cmd.Context())
			if err != nil {
				return err
			}
			return e.render(cmd.OutOrStdout(), res)
		},
	}
}

func propertiesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "properties",
		Short: "List properties with their fund balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := e.client.GetPropertyList(cmd.Context())
			if err != nil {
				return err
			}
			return e.render(cmd.OutOrStdout(), res)
		},
	}
}
