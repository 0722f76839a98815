package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hhforecast/household-forecast/internal/config"
	"github.com/hhforecast/household-forecast/internal/transfer"
)

func newExportCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the whole household to a JSON document, or a YAML data file for .yaml/.yml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.load(cmd)
			if err != nil {
				return err
			}
			switch strings.ToLower(filepath.Ext(args[0])) {
			case ".yaml", ".yml":
				err = config.NewInputParser().WriteToFile(args[0], m)
			default:
				err = transfer.ExportFile(args[0], m)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported household %q to %s\n", o.key, args[0])
			return nil
		},
	}
}

func newImportCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the household with an exported JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := transfer.ImportFile(args[0])
			if err != nil {
				return err
			}
			if err := config.NewInputParser().ValidateDataModel(m); err != nil {
				return fmt.Errorf("imported household is invalid: %w", err)
			}
			if _, err := o.loadForUpdate(cmd); err != nil {
				return err
			}
			if err := o.save(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s into household %q\n", args[0], o.key)
			return nil
		},
	}
}
