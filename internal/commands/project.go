package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hhforecast/household-forecast/internal/config"
	"github.com/hhforecast/household-forecast/internal/output"
)

func newProjectCommand(o *options) *cobra.Command {
	var format string
	var outDir string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Forecast the household and every saved scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(cmd, o, format, outDir)
		},
	}

	cmd.Flags().StringVar(&format, "format", "console",
		fmt.Sprintf("report format (%s, or all with --output)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringVar(&outDir, "output", "", "write timestamped report files to this directory instead of stdout")

	return cmd
}

func runProject(cmd *cobra.Command, o *options, format, outDir string) error {
	m, err := o.load(cmd)
	if err != nil {
		return err
	}
	if err := config.NewInputParser().ValidateDataModel(m); err != nil {
		return fmt.Errorf("household %q is invalid: %w", o.key, err)
	}
	engine, err := o.engine(cmd)
	if err != nil {
		return err
	}

	report := engine.Forecast(m)

	if outDir != "" {
		files, err := output.GenerateReport(report, format, outDir)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", f)
		}
		return nil
	}

	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q (use --output for multi-file formats)", output.ErrUnsupportedFormat, format)
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
