package languages

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/modgraph/depgraph/registry"
	"github.com/spf13/cobra"
)

// Cmd represents the languages command.
var Cmd = NewCommand()

// NewCommand returns a new languages command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List all supported languages and file extensions",
		Long: `List the import syntaxes the resolver understands, their mapped file
extensions and how well each is tested.

Modules in other languages are resolved with JavaScript path rules.

Examples:
  modgraph languages`,
		RunE: runLanguages,
	}

	return cmd
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	for _, language := range registry.SupportedLanguages() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) [%s]\n",
			language.Name, strings.Join(language.Extensions, ", "), language.Maturity.DisplayName()); err != nil {
			return err
		}
	}

	return nil
}
