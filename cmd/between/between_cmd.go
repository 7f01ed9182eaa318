package between

import (
	"fmt"

	"github.com/LegacyCodeHQ/modgraph/cmd/formatters"
	"github.com/LegacyCodeHQ/modgraph/cmd/load"
	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type betweenOptions struct {
	load.Options
	outputFormat string
}

// Cmd represents the between command.
var Cmd = NewCommand()

// NewCommand returns a new between command instance.
func NewCommand() *cobra.Command {
	opts := &betweenOptions{
		outputFormat: formatters.OutputFormatText.String(),
	}

	cmd := &cobra.Command{
		Use:   "between <module> <module>...",
		Short: "Show the modules on dependency paths between modules",
		Long: `Show the subgraph of every module lying on a directed import path between
any two of the given modules, in either direction.

Examples:
  modgraph between -m imports.json src/ui/button.ts src/api/client.ts`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBetween(cmd, opts, args)
		},
	}

	load.AddFlags(cmd, &opts.Options)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))

	return cmd
}

func runBetween(cmd *cobra.Command, opts *betweenOptions, targets []string) error {
	format, ok := formatters.ParseOutputFormat(opts.outputFormat)
	if !ok {
		return fmt.Errorf("unknown format: %s (valid options: %s)", opts.outputFormat, formatters.SupportedFormats())
	}

	result, err := load.Graph(cmd.Context(), cmd, &opts.Options)
	if err != nil {
		return err
	}

	var missing []string
	for _, target := range targets {
		if !result.Graph.HasModule(target) {
			missing = append(missing, target)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", depgraph.ErrModuleNotFound, missing)
	}

	nodes := depgraph.FindPathNodes(result.Graph, targets)
	subgraph := depgraph.Subgraph(result.Graph, nodes)

	if format == formatters.OutputFormatJSON {
		return formatters.WriteJSON(cmd.OutOrStdout(), subgraph)
	}

	tbl := formatters.NewTable()
	tbl.AppendHeader(table.Row{"Module", "Imports"})
	for _, node := range nodes {
		for _, dep := range subgraph[node] {
			tbl.AppendRow(table.Row{node, dep})
		}
		if len(subgraph[node]) == 0 {
			tbl.AppendRow(table.Row{node, ""})
		}
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("%d modules", len(nodes))})

	_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
	return err
}
