package cycles

import (
	"errors"
	"fmt"

	"github.com/LegacyCodeHQ/modgraph/cmd/formatters"
	"github.com/LegacyCodeHQ/modgraph/cmd/load"
	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ErrCyclesFound is returned when --fail is set and the graph has cycles.
var ErrCyclesFound = errors.New("circular dependencies found")

type cyclesOptions struct {
	load.Options
	outputFormat string
	fail         bool
}

// Cmd represents the cycles command.
var Cmd = NewCommand()

// NewCommand returns a new cycles command instance.
func NewCommand() *cobra.Command {
	opts := &cyclesOptions{
		outputFormat: formatters.OutputFormatText.String(),
	}

	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "List every circular dependency",
		Long: `List every elementary cycle of the dependency graph, each exactly once.

Self-imports are reported as one-module cycles.

Examples:
  modgraph cycles -m imports.json
  modgraph cycles -m imports.json --fail    # exit non-zero when cycles exist`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCycles(cmd, opts)
		},
	}

	load.AddFlags(cmd, &opts.Options)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().BoolVar(&opts.fail, "fail", false, "Exit with an error when cycles are found")

	return cmd
}

func runCycles(cmd *cobra.Command, opts *cyclesOptions) error {
	format, ok := formatters.ParseOutputFormat(opts.outputFormat)
	if !ok {
		return fmt.Errorf("unknown format: %s (valid options: %s)", opts.outputFormat, formatters.SupportedFormats())
	}

	result, err := load.Graph(cmd.Context(), cmd, &opts.Options)
	if err != nil {
		return err
	}

	cycles := depgraph.FindCycles(result.Graph)
	result.Logger.Info("cycle search finished", "modules", result.Graph.Len(), "cycles", len(cycles))

	if format == formatters.OutputFormatJSON {
		paths := make([][]string, 0, len(cycles))
		for _, cycle := range cycles {
			paths = append(paths, cycle.Path)
		}
		err = formatters.WriteJSON(cmd.OutOrStdout(), paths)
	} else {
		err = printCycles(cmd, cycles)
	}
	if err != nil {
		return err
	}

	if opts.fail && len(cycles) > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%w: %d", ErrCyclesFound, len(cycles))
	}
	return nil
}

func printCycles(cmd *cobra.Command, cycles []depgraph.Cycle) error {
	out := cmd.OutOrStdout()
	if len(cycles) == 0 {
		_, err := color.New(color.FgGreen).Fprintln(out, "No circular dependency found")
		return err
	}

	if _, err := color.New(color.FgRed).Fprintf(out, "Found %d circular dependencies\n\n", len(cycles)); err != nil {
		return err
	}
	for i, cycle := range cycles {
		if _, err := fmt.Fprintf(out, "%d) %s\n", i+1, cycle); err != nil {
			return err
		}
	}
	return nil
}
