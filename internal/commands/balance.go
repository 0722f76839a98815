package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hhforecast/household-forecast/internal/calculation"
	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/hhforecast/household-forecast/internal/output"
	"github.com/hhforecast/household-forecast/pkg/dateutil"
)

func newCoreBalanceCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "core-balance",
		Short: "Estimate the household's typical monthly surplus from recorded balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.load(cmd)
			if err != nil {
				return err
			}
			engine, err := o.engine(cmd)
			if err != nil {
				return err
			}
			cb, ok := engine.EstimateCoreBalance(calculation.CoreBalanceFromModel(m))
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Core balance: more data needed (record at least two monthly balances)")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Core balance: %s / month (%s)\n", output.FormatYen(cb), output.FormatCompact(cb))
			return nil
		},
	}
}

func newBalanceCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Record and review monthly balances",
	}
	cmd.AddCommand(newBalanceSetCommand(o), newBalanceListCommand(o), newBalanceDeleteCommand(o))
	return cmd
}

func newBalanceSetCommand(o *options) *cobra.Command {
	var total string
	var accounts map[string]string

	cmd := &cobra.Command{
		Use:   "set YYYY-MM",
		Short: "Record the balance for a month, replacing any existing entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := buildBalance(args[0], total, accounts)
			if err != nil {
				return err
			}
			m, err := o.loadForUpdate(cmd)
			if err != nil {
				return err
			}
			m.UpsertBalance(b)
			if err := o.save(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s: %s\n", b.Month, output.FormatYen(b.Total))
			return nil
		},
	}

	cmd.Flags().StringVar(&total, "total", "", "total balance in yen")
	cmd.Flags().StringToStringVar(&accounts, "account", nil, "per-account balance as id=amount; the total is their sum")
	cmd.MarkFlagsOneRequired("total", "account")

	return cmd
}

// buildBalance parses the flags of "balance set". When accounts are given the
// total is derived from them and an explicit total must agree.
func buildBalance(month, total string, accounts map[string]string) (domain.MonthlyBalance, error) {
	if !dateutil.IsValidYearMonth(month) {
		return domain.MonthlyBalance{}, fmt.Errorf("month %q must be YYYY-MM", month)
	}
	b := domain.MonthlyBalance{Month: month}
	if len(accounts) > 0 {
		b.Accounts = make(map[string]decimal.Decimal, len(accounts))
		for id, raw := range accounts {
			v, err := decimal.NewFromString(raw)
			if err != nil {
				return domain.MonthlyBalance{}, fmt.Errorf("account %s: invalid amount %q", id, raw)
			}
			b.Accounts[id] = v
		}
		b.Total = b.AccountsSum()
	}
	if total != "" {
		v, err := decimal.NewFromString(total)
		if err != nil {
			return domain.MonthlyBalance{}, fmt.Errorf("invalid total %q", total)
		}
		if b.Accounts != nil && !v.Equal(b.Total) {
			return domain.MonthlyBalance{}, fmt.Errorf("total %s does not match account sum %s", v, b.Total)
		}
		b.Total = v
	}
	return b, nil
}

func newBalanceListCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded balances oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.load(cmd)
			if err != nil {
				return err
			}
			balances := domain.SortedBalances(m.MonthlyBalances)
			if len(balances) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No balances recorded.")
				return nil
			}
			for _, b := range balances {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %15s%s\n", b.Month, output.FormatYen(b.Total), accountSuffix(b))
			}
			return nil
		},
	}
}

func accountSuffix(b domain.MonthlyBalance) string {
	if len(b.Accounts) == 0 {
		return ""
	}
	ids := make([]string, 0, len(b.Accounts))
	for id := range b.Accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id + "=" + output.FormatYen(b.Accounts[id])
	}
	return "  (" + strings.Join(parts, ", ") + ")"
}

func newBalanceDeleteCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete YYYY-MM",
		Short: "Remove the balance recorded for a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.loadForUpdate(cmd)
			if err != nil {
				return err
			}
			if !m.DeleteBalance(args[0]) {
				return fmt.Errorf("no balance recorded for %s", args[0])
			}
			if err := o.save(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
