package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hhforecast/household-forecast/internal/calculation"
	"github.com/hhforecast/household-forecast/internal/config"
	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/hhforecast/household-forecast/internal/output"
	"github.com/hhforecast/household-forecast/pkg/dateutil"
)

// update loads the household, applies edit, validates the result and saves it.
func (o *options) update(cmd *cobra.Command, edit func(m *domain.DataModel) error) error {
	m, err := o.loadForUpdate(cmd)
	if err != nil {
		return err
	}
	if err := edit(m); err != nil {
		return err
	}
	if err := config.NewInputParser().ValidateDataModel(m); err != nil {
		return err
	}
	return o.save(m)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %s cannot be negative", v)
	}
	return v, nil
}

func newAccountCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the accounts balances are recorded against",
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := domain.NewAccount(args[0])
			err := o.update(cmd, func(m *domain.DataModel) error {
				m.Accounts = append(m.Accounts, a)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added account %q (%s)\n", a.Name, a.ID)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.load(cmd)
			if err != nil {
				return err
			}
			if len(m.Accounts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No accounts.")
				return nil
			}
			for _, a := range m.Accounts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", a.ID, a.Name)
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an account; recorded balances keep their per-account values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := o.update(cmd, func(m *domain.DataModel) error {
				if !m.DeleteAccount(args[0]) {
					return fmt.Errorf("no account with id %s", args[0])
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, del)
	return cmd
}

func newMemberCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage the family roster; the first member is the household head",
	}

	var age, birthMonth int
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a family member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := domain.NewFamilyMember(args[0], age, birthMonth)
			err := o.update(cmd, func(m *domain.DataModel) error {
				m.Families = append(m.Families, f)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added member %q (%s)\n", f.Name, f.ID)
			return nil
		},
	}
	add.Flags().IntVar(&age, "age", 0, "age in years today")
	add.Flags().IntVar(&birthMonth, "birth-month", 0, "birth month (1-12); the age ticks over in this month")
	_ = add.MarkFlagRequired("age")

	list := &cobra.Command{
		Use:   "list",
		Short: "List family members with their current schooling stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.load(cmd)
			if err != nil {
				return err
			}
			if len(m.Families) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No family members.")
				return nil
			}
			for i, f := range m.Families {
				role := "dependent"
				if i == 0 {
					role = "head"
				}
				stage := calculation.EducationStage(f.Age)
				if stage == "" {
					stage = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-12s  %-9s  age %3d  %s\n", f.ID, f.Name, role, f.Age, stage)
			}
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func newLoanCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Manage fixed monthly loan payments",
	}

	var amount, start, end string
	var months int
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a loan paid every month from --start through --end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseAmount(amount)
			if err != nil {
				return err
			}
			endYM, err := loanEnd(start, end, months)
			if err != nil {
				return err
			}
			l := domain.NewLoan(args[0], v, start, endYM)
			err = o.update(cmd, func(m *domain.DataModel) error {
				m.Loans = append(m.Loans, l)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added loan %q: %s / month, %s to %s (%d payments)\n",
				l.Name, output.FormatYen(l.Amount), l.StartYM, l.EndYM, dateutil.DiffMonths(l.EndYM, l.StartYM)+1)
			return nil
		},
	}
	add.Flags().StringVar(&amount, "amount", "", "monthly payment in yen")
	add.Flags().StringVar(&start, "start", "", "first payment month (YYYY-MM)")
	add.Flags().StringVar(&end, "end", "", "last payment month (YYYY-MM)")
	add.Flags().IntVar(&months, "months", 0, "number of payments, as an alternative to --end")
	_ = add.MarkFlagRequired("amount")
	_ = add.MarkFlagRequired("start")
	add.MarkFlagsOneRequired("end", "months")
	add.MarkFlagsMutuallyExclusive("end", "months")

	cmd.AddCommand(add)
	return cmd
}

// loanEnd resolves the last payment month from either --end or --months.
func loanEnd(start, end string, months int) (string, error) {
	if !dateutil.IsValidYearMonth(start) {
		return "", fmt.Errorf("start month %q must be YYYY-MM", start)
	}
	if end != "" {
		return end, nil
	}
	if months <= 0 {
		return "", fmt.Errorf("--months must be positive")
	}
	return dateutil.FormatYearMonth(dateutil.AddMonths(dateutil.MustParseYearMonth(start), months-1)), nil
}

func newRecurringCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage expenses that fall due every few years",
	}

	var amount, start, category string
	var interval int
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an expense due in the --start month every --interval years",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseAmount(amount)
			if err != nil {
				return err
			}
			if !slices.Contains(domain.RecurringIntervals, interval) {
				return fmt.Errorf("interval %d is not one of %s years", interval, joinInts(domain.RecurringIntervals))
			}
			e := domain.NewRecurringExpense(args[0], v, interval, start, domain.ExpenseCategory(category))
			err = o.update(cmd, func(m *domain.DataModel) error {
				m.RecurringExpenses = append(m.RecurringExpenses, e)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added recurring expense %q: %s every %d years from %s\n",
				e.Name, output.FormatYen(e.Amount), e.IntervalYears, e.StartYM)
			return nil
		},
	}
	add.Flags().StringVar(&amount, "amount", "", "amount in yen each time it falls due")
	add.Flags().IntVar(&interval, "interval", 1, "years between payments")
	add.Flags().StringVar(&start, "start", "", "first due month (YYYY-MM)")
	add.Flags().StringVar(&category, "category", "", "vehicle, housing, insurance, education or other")
	_ = add.MarkFlagRequired("amount")
	_ = add.MarkFlagRequired("start")

	list := &cobra.Command{
		Use:   "list",
		Short: "List recurring expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.load(cmd)
			if err != nil {
				return err
			}
			if len(m.RecurringExpenses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recurring expenses.")
				return nil
			}
			for _, e := range m.RecurringExpenses {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-20s  %12s  every %2dy from %s  [%s]\n",
					e.ID, e.Name, output.FormatYen(e.Amount), e.IntervalYears, e.StartYM, e.EffectiveCategory())
			}
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func newEventCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage one-off expenses tied to a family member's age",
	}

	var amount, member string
	var age, month int
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an expense due when --member reaches --age, in --month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseAmount(amount)
			if err != nil {
				return err
			}
			ev := domain.NewFutureEvent(args[0], v, member, age, month)
			err = o.update(cmd, func(m *domain.DataModel) error {
				if domain.LookupMember(m.Families, member).Missing() {
					return fmt.Errorf("no family member with id %s", member)
				}
				m.FutureEvents = append(m.FutureEvents, ev)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added event %q: %s at age %d, month %d\n",
				ev.Name, output.FormatYen(ev.Amount), ev.TargetAge, ev.TargetMonth)
			return nil
		},
	}
	add.Flags().StringVar(&amount, "amount", "", "amount in yen")
	add.Flags().StringVar(&member, "member", "", "family member id")
	add.Flags().IntVar(&age, "age", 0, "member age at which the event falls due")
	add.Flags().IntVar(&month, "month", 4, "calendar month the event falls due (1-12)")
	_ = add.MarkFlagRequired("amount")
	_ = add.MarkFlagRequired("member")
	_ = add.MarkFlagRequired("age")

	cmd.AddCommand(add)
	return cmd
}
