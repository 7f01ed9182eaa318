package communities

import (
	"fmt"

	"github.com/LegacyCodeHQ/modgraph/cmd/formatters"
	"github.com/LegacyCodeHQ/modgraph/cmd/load"
	"github.com/LegacyCodeHQ/modgraph/community"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type communitiesOptions struct {
	load.Options
	outputFormat    string
	method          string
	resolution      float64
	sharedThreshold int
	noShared        bool
}

type communitiesOutput struct {
	Communities map[string][]string `json:"communities"`
	Metrics     community.Report    `json:"metrics"`
}

// Cmd represents the communities command.
var Cmd = NewCommand()

// NewCommand returns a new communities command instance.
func NewCommand() *cobra.Command {
	opts := &communitiesOptions{
		outputFormat: formatters.OutputFormatText.String(),
		method:       string(community.MethodDir),
		resolution:   community.DefaultResolution,
	}

	cmd := &cobra.Command{
		Use:   "communities",
		Short: "Group modules into communities and measure coupling",
		Long: `Group modules into communities, move modules imported from many other
communities into a "Shared" community, and report the imports and exports
crossing community boundaries.

Methods:
  dir      one community per top-level directory
  louvain  Louvain modularity optimization over the undirected import graph
  greedy   greedy modularity merging, keeping at least one community per 30 modules

Examples:
  modgraph communities -m imports.json
  modgraph communities -m imports.json --method louvain --resolution 1.0
  modgraph communities -m imports.json --shared-threshold 5 -f json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommunities(cmd, opts)
		},
	}

	load.AddFlags(cmd, &opts.Options)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().StringVar(&opts.method, "method", opts.method, "Grouping method (dir, louvain, greedy)")
	cmd.Flags().Float64Var(&opts.resolution, "resolution", opts.resolution, "Modularity resolution for louvain and greedy; higher gives smaller communities")
	cmd.Flags().IntVar(&opts.sharedThreshold, "shared-threshold", 0, "Outer exports that move a module to Shared (default from config)")
	cmd.Flags().BoolVar(&opts.noShared, "no-shared", false, "Keep every module in its detected community")

	return cmd
}

func runCommunities(cmd *cobra.Command, opts *communitiesOptions) error {
	format, ok := formatters.ParseOutputFormat(opts.outputFormat)
	if !ok {
		return fmt.Errorf("unknown format: %s (valid options: %s)", opts.outputFormat, formatters.SupportedFormats())
	}

	method, err := community.ParseMethod(opts.method)
	if err != nil {
		return err
	}

	result, err := load.Graph(cmd.Context(), cmd, &opts.Options)
	if err != nil {
		return err
	}

	threshold := result.Config.SharedThreshold
	if opts.sharedThreshold > 0 {
		threshold = opts.sharedThreshold
	}

	groups, err := community.Detect(result.Graph, method, opts.resolution)
	if err != nil {
		return err
	}
	if !opts.noShared {
		groups = community.MoveSharedModules(groups, result.Graph, threshold)
	}
	report := community.Calculate(groups, result.Graph)

	if format == formatters.OutputFormatJSON {
		members := make(map[string][]string, len(groups))
		for _, group := range groups {
			members[group.Name] = group.Modules
		}
		return formatters.WriteJSON(cmd.OutOrStdout(), communitiesOutput{Communities: members, Metrics: report})
	}

	tbl := formatters.NewTable()
	tbl.AppendHeader(table.Row{"Community", "Files", "Outer imports", "Outer exports", "Connections", "Max imports/file", "Max exports/file"})
	for _, m := range report.Communities {
		tbl.AppendRow(table.Row{
			m.Name,
			humanize.Comma(int64(m.Files)),
			humanize.Comma(int64(m.OuterImports)),
			humanize.Comma(int64(m.OuterExports)),
			humanize.Comma(int64(m.OuterConnections)),
			m.MaxOuterImportsOneFile,
			m.MaxOuterExportsOneFile,
		})
	}
	s := report.Summary
	tbl.AppendFooter(table.Row{
		fmt.Sprintf("%d communities", s.Communities),
		"",
		humanize.Comma(int64(s.OuterImports)),
		humanize.Comma(int64(s.OuterExports)),
		humanize.Comma(int64(s.OuterConnections)),
		s.MaxOuterImportsOneFile,
		s.MaxOuterExportsOneFile,
	})

	_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
	return err
}
