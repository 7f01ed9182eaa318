package leaves

import (
	"fmt"

	"github.com/LegacyCodeHQ/modgraph/cmd/formatters"
	"github.com/LegacyCodeHQ/modgraph/cmd/load"
	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/spf13/cobra"
)

type leavesOptions struct {
	load.Options
	outputFormat string
}

// Cmd represents the leaves command.
var Cmd = NewCommand()

// NewCommand returns a new leaves command instance.
func NewCommand() *cobra.Command {
	opts := &leavesOptions{
		outputFormat: formatters.OutputFormatText.String(),
	}

	cmd := &cobra.Command{
		Use:   "leaves",
		Short: "List modules without dependencies",
		Long: `List modules that import no other module of the graph.

Examples:
  modgraph leaves -m imports.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, ok := formatters.ParseOutputFormat(opts.outputFormat)
			if !ok {
				return fmt.Errorf("unknown format: %s (valid options: %s)", opts.outputFormat, formatters.SupportedFormats())
			}

			result, err := load.Graph(cmd.Context(), cmd, &opts.Options)
			if err != nil {
				return err
			}
			return formatters.WriteList(cmd.OutOrStdout(), format, depgraph.Leaves(result.Graph))
		},
	}

	load.AddFlags(cmd, &opts.Options)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))

	return cmd
}
