package depth

import (
	"errors"
	"fmt"

	"github.com/LegacyCodeHQ/modgraph/cmd/formatters"
	"github.com/LegacyCodeHQ/modgraph/cmd/load"
	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/spf13/cobra"
)

type depthOptions struct {
	load.Options
	outputFormat string
	tolerant     bool
}

type depthResult struct {
	Module   string `json:"module"`
	Depth    int    `json:"depth"`
	Tolerant bool   `json:"tolerant"`
}

// Cmd represents the depth command.
var Cmd = NewCommand()

// NewCommand returns a new depth command instance.
func NewCommand() *cobra.Command {
	opts := &depthOptions{
		outputFormat: formatters.OutputFormatText.String(),
	}

	cmd := &cobra.Command{
		Use:   "depth <module>...",
		Short: "Print the longest dependency chain below modules",
		Long: `Print the length of the longest path of imports starting at each module.

Depth is undefined when a cycle is reachable from the module, even when the
module itself is not on that cycle. The command then fails unless --tolerant
is given, in which case a path stops at its first revisit of a module.

Examples:
  modgraph depth -m imports.json src/main.ts
  modgraph depth -m imports.json --tolerant src/main.ts src/worker.ts`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDepth(cmd, opts, args)
		},
	}

	load.AddFlags(cmd, &opts.Options)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().BoolVarP(&opts.tolerant, "tolerant", "t", false, "Stop paths at the first revisited module instead of failing on cycles")

	return cmd
}

func runDepth(cmd *cobra.Command, opts *depthOptions, modules []string) error {
	format, ok := formatters.ParseOutputFormat(opts.outputFormat)
	if !ok {
		return fmt.Errorf("unknown format: %s (valid options: %s)", opts.outputFormat, formatters.SupportedFormats())
	}

	result, err := load.Graph(cmd.Context(), cmd, &opts.Options)
	if err != nil {
		return err
	}

	var depthOpts []depgraph.DepthOption
	if opts.tolerant {
		depthOpts = append(depthOpts, depgraph.CycleTolerant())
	}

	results := make([]depthResult, 0, len(modules))
	for _, module := range modules {
		depth, err := depgraph.DepthFrom(result.Graph, module, depthOpts...)
		var cycleErr *depgraph.CycleError
		if errors.As(err, &cycleErr) {
			return fmt.Errorf("%w (re-run with --tolerant to measure anyway)", err)
		}
		if err != nil {
			return err
		}
		results = append(results, depthResult{Module: module, Depth: depth, Tolerant: opts.tolerant})
	}

	if format == formatters.OutputFormatJSON {
		return formatters.WriteJSON(cmd.OutOrStdout(), results)
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", r.Module, r.Depth); err != nil {
			return err
		}
	}
	return nil
}
