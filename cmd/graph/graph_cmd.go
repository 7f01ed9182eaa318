package graph

import (
	"fmt"

	"github.com/LegacyCodeHQ/modgraph/cmd/formatters"
	"github.com/LegacyCodeHQ/modgraph/cmd/load"
	"github.com/spf13/cobra"
)

type graphOptions struct {
	load.Options
	outputFormat string
}

// Cmd represents the graph command.
var Cmd = NewCommand()

// NewCommand returns a new graph command instance.
func NewCommand() *cobra.Command {
	opts := &graphOptions{
		outputFormat: formatters.OutputFormatJSON.String(),
	}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Build the dependency graph and print it",
		Long: `Resolve every import in the import map and print the resulting graph.

The JSON output lists each module's dependencies, all elementary cycles,
unresolved imports, orphans and entry points.

Examples:
  modgraph graph -m imports.json
  modgraph graph -m imports.yaml -f text
  modgraph graph -m imports.json -c HEAD~3
  parse-imports src | modgraph graph -m -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGraph(cmd, opts)
		},
	}

	load.AddFlags(cmd, &opts.Options)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))

	return cmd
}

func runGraph(cmd *cobra.Command, opts *graphOptions) error {
	formatter, err := formatters.NewFormatter(opts.outputFormat)
	if err != nil {
		return err
	}

	result, err := load.Graph(cmd.Context(), cmd, &opts.Options)
	if err != nil {
		return err
	}

	output, err := formatter.Format(result.Graph)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}
