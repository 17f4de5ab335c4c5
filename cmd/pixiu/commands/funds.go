package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"pixiu/internal/api"
	"pixiu/internal/model"
)

func fundsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "funds",
		Short: "List and edit income and expense entries",
	}
	cmd.AddCommand(
		fundsListCmd(e),
		fundsSourcesCmd(e),
		fundsTypesCmd(e),
		fundsAddCmd(e),
		fundsUpdateCmd(e),
		fundsDeleteCmd(e),
	)
	return cmd
}

func fundsListCmd(e *env) *cobra.Command {
	var q api.FundQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of funds with the range totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("to") {
				q.To = time.Now().Unix()
			}
			page, err := e.client.GetFundList(cmd.Context(), q)
			if err != nil {
				return err
			}
			return e.render(cmd.OutOrStdout(), page)
		},
	}

	f := cmd.Flags()
	f.Int64Var(&q.From, "from", 0, "range start, unix seconds")
	f.Int64Var(&q.To, "to", 0, "range end, unix seconds (default now)")
	f.IntVar(&q.Page, "page", 1, "1-based page")
	f.IntVar(&q.Size, "size", 10, "page size")
	f.StringSliceVar(&q.Source, "source", nil, "only these sources (repeat or comma-separate)")
	f.StringSliceVar(&q.Type, "type", nil, "only these classes")
	f.StringSliceVar(&q.Name, "name", nil, "only these names")
	return cmd
}

func fundsSourcesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List distinct fund sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := e.client.GetFundSources(cmd.Context())
			if err != nil {
				return err
			}
			return e.render(cmd.OutOrStdout(), res)
		},
	}
}

func fundsTypesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List distinct fund classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := e.client.GetFundTypes(cmd.Context())
			if err != nil {
				return err
			}
			return e.render(cmd.OutOrStdout(), res)
		},
	}
}

// fundFlags registers the editable fund fields on cmd. Updates replace the
// whole record, so they must restate the timestamp instead of defaulting it.
func fundFlags(cmd *cobra.Command, f *model.Fund, timestampRequired bool) {
	fl := cmd.Flags()
	fl.Float64Var(&f.Amount, "amount", 0, "amount; negative for expenses")
	fl.StringVar(&f.Name, "name", "", "entry name")
	fl.StringVar(&f.Class, "class", "", "entry class, e.g. food")
	fl.StringVar(&f.Source, "source", "", "account the money moved through")

	required := []string{"amount", "name", "class", "source"}
	if timestampRequired {
		fl.Int64Var(&f.Timestamp, "timestamp", 0, "unix seconds")
		required = append(required, "timestamp")
	} else {
		fl.Int64Var(&f.Timestamp, "timestamp", 0, "unix seconds (default now)")
	}
	for _, name := range required {
		_ = cmd.MarkFlagRequired(name)
	}
}

func fundsAddCmd(e *env) *cobra.Command {
	var f model.Fund

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new fund",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("timestamp") {
				f.Timestamp = time.Now().Unix()
			}
			out, err := e.client.AddFund(cmd.Context(), &f)
			if err != nil {
				return err
			}
			return e.render(cmd.OutOrStdout(), out)
		},
	}
	fundFlags(cmd, &f, false)
	return cmd
}

func fundsUpdateCmd(e *env) *cobra.Command {
	var f model.Fund

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace every field of a fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out, err := e.client.UpdateFund(cmd.Context(), id, &f)
			if err != nil {
				return err
			}
			return e.render(cmd.OutOrStdout(), out)
		},
	}
	fundFlags(cmd, &f, true)
	return cmd
}

func fundsDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := e.client.DeleteFund(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "deleted fund %d\n", id)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid fund id %q", s)
	}
	return id, nil
}
