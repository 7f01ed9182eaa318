package cmd

import (
	"os"

	"github.com/LegacyCodeHQ/modgraph/cmd/between"
	"github.com/LegacyCodeHQ/modgraph/cmd/communities"
	"github.com/LegacyCodeHQ/modgraph/cmd/cycles"
	"github.com/LegacyCodeHQ/modgraph/cmd/dependents"
	"github.com/LegacyCodeHQ/modgraph/cmd/depth"
	"github.com/LegacyCodeHQ/modgraph/cmd/graph"
	"github.com/LegacyCodeHQ/modgraph/cmd/languages"
	"github.com/LegacyCodeHQ/modgraph/cmd/leaves"
	"github.com/LegacyCodeHQ/modgraph/cmd/orphans"
	"github.com/LegacyCodeHQ/modgraph/cmd/watch"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// noColor disables ANSI colours in every subcommand's output
var noColor bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modgraph",
		Short: "Build and query module dependency graphs",
		Long: `modgraph builds a module dependency graph from an import map (every
module's raw import specifiers, as produced by a parser) and answers
structural questions about it: cycles, orphans, leaves, depth, dependents,
paths between modules and cross-directory coupling.

Use 'modgraph --help' to see all available commands, or 'modgraph <command> --help'
for detailed information about a specific command.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	cmd.AddCommand(
		graph.NewCommand(),
		cycles.NewCommand(),
		orphans.NewCommand(),
		leaves.NewCommand(),
		depth.NewCommand(),
		dependents.NewCommand(),
		between.NewCommand(),
		communities.NewCommand(),
		languages.NewCommand(),
		watch.NewCommand(),
	)

	// Initialize annotations for version template
	cmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
