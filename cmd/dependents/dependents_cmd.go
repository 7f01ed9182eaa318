package dependents

import (
	"fmt"

	"github.com/LegacyCodeHQ/modgraph/cmd/formatters"
	"github.com/LegacyCodeHQ/modgraph/cmd/load"
	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/spf13/cobra"
)

type dependentsOptions struct {
	load.Options
	outputFormat string
	reverse      bool
}

// Cmd represents the dependents command.
var Cmd = NewCommand()

// NewCommand returns a new dependents command instance.
func NewCommand() *cobra.Command {
	opts := &dependentsOptions{
		outputFormat: formatters.OutputFormatText.String(),
	}

	cmd := &cobra.Command{
		Use:   "dependents <module>",
		Short: "List the modules that import a module",
		Long: `List the modules that directly import the given module.

With --reverse, list the modules the given module imports instead.

Examples:
  modgraph dependents -m imports.json src/utils/date.ts
  modgraph dependents -m imports.json --reverse src/main.ts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, ok := formatters.ParseOutputFormat(opts.outputFormat)
			if !ok {
				return fmt.Errorf("unknown format: %s (valid options: %s)", opts.outputFormat, formatters.SupportedFormats())
			}

			result, err := load.Graph(cmd.Context(), cmd, &opts.Options)
			if err != nil {
				return err
			}

			query := depgraph.Dependents
			if opts.reverse {
				query = depgraph.Dependencies
			}
			modules, err := query(result.Graph, args[0])
			if err != nil {
				return err
			}
			return formatters.WriteList(cmd.OutOrStdout(), format, modules)
		},
	}

	load.AddFlags(cmd, &opts.Options)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().BoolVar(&opts.reverse, "reverse", false, "List dependencies instead of dependents")

	return cmd
}
