package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScenarioCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Save, list and delete what-if snapshots",
	}
	cmd.AddCommand(newScenarioSaveCommand(o), newScenarioListCommand(o), newScenarioDeleteCommand(o))
	return cmd
}

func newScenarioSaveCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "save NAME",
		Short: "Snapshot the current settings, family, loans and recurring expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.loadForUpdate(cmd)
			if err != nil {
				return err
			}
			now, err := o.clock()
			if err != nil {
				return err
			}
			s := m.SnapshotScenario(args[0], now())
			if err := o.save(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved scenario %q (%s)\n", s.Name, s.ID)
			return nil
		},
	}
}

func newScenarioListCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.load(cmd)
			if err != nil {
				return err
			}
			if len(m.Scenarios) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No scenarios saved.")
				return nil
			}
			for _, s := range m.Scenarios {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-24s  %s\n", s.ID, s.Name, s.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newScenarioDeleteCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.loadForUpdate(cmd)
			if err != nil {
				return err
			}
			s, err := m.Scenario(args[0])
			if err != nil {
				return fmt.Errorf("deleting %s: %w", args[0], err)
			}
			if err := m.DeleteScenario(s.ID); err != nil {
				return err
			}
			if err := o.save(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted scenario %q (%s)\n", s.Name, s.ID)
			return nil
		},
	}
}
