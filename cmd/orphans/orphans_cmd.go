package orphans

import (
	"fmt"

	"github.com/LegacyCodeHQ/modgraph/cmd/formatters"
	"github.com/LegacyCodeHQ/modgraph/cmd/load"
	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/spf13/cobra"
)

type orphansOptions struct {
	load.Options
	outputFormat string
}

// Cmd represents the orphans command.
var Cmd = NewCommand()

// NewCommand returns a new orphans command instance.
func NewCommand() *cobra.Command {
	opts := &orphansOptions{
		outputFormat: formatters.OutputFormatText.String(),
	}

	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "List modules that nothing imports",
		Long: `List modules with no incoming dependency, excluding entry points.

Examples:
  modgraph orphans -m imports.json
  modgraph orphans -m imports.json -e src/index.ts`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, ok := formatters.ParseOutputFormat(opts.outputFormat)
			if !ok {
				return fmt.Errorf("unknown format: %s (valid options: %s)", opts.outputFormat, formatters.SupportedFormats())
			}

			result, err := load.Graph(cmd.Context(), cmd, &opts.Options)
			if err != nil {
				return err
			}
			return formatters.WriteList(cmd.OutOrStdout(), format, depgraph.Orphans(result.Graph))
		},
	}

	load.AddFlags(cmd, &opts.Options)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))

	return cmd
}
