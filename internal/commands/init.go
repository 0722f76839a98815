package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hhforecast/household-forecast/internal/config"
	"github.com/hhforecast/household-forecast/internal/domain"
)

func newInitCommand(o *options) *cobra.Command {
	var from string
	var example bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a household record, optionally from a YAML or JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, o, from, example, force)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "seed the household from a YAML or JSON data file")
	cmd.Flags().BoolVar(&example, "example", false, "seed the household with a worked example")
	cmd.Flags().BoolVar(&force, "force", false, "replace a household that already has data")
	cmd.MarkFlagsMutuallyExclusive("from", "example")

	return cmd
}

func runInit(cmd *cobra.Command, o *options, from string, example, force bool) error {
	existing, err := o.loadForUpdate(cmd)
	if err != nil {
		return err
	}
	if !force && hasData(existing) {
		return fmt.Errorf("household %q already has data; use --force to replace it", o.key)
	}

	parser := config.NewInputParser()
	m := domain.DefaultDataModel()
	switch {
	case from != "":
		m, err = parser.LoadFromFile(from)
		if err != nil {
			return fmt.Errorf("loading %s: %w", from, err)
		}
	case example:
		m = parser.CreateExampleDataModel()
	}

	if err := o.save(m); err != nil {
		return fmt.Errorf("writing household: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized household %q in %s (%d members, %d balances)\n",
		o.key, o.storeDir, len(m.Families), len(m.MonthlyBalances))
	return nil
}

func hasData(m *domain.DataModel) bool {
	return len(m.Accounts) > 0 || len(m.Families) > 0 || len(m.MonthlyBalances) > 0 || len(m.Scenarios) > 0
}
