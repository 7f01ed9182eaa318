package formatters

import (
	"fmt"
	"io"
	"strings"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TextFormatter renders one table row per module.
type TextFormatter struct{}

// Format converts the dependency graph to a plain-text table.
func (f *TextFormatter) Format(g *depgraph.Graph) (string, error) {
	tbl := NewTable()
	tbl.AppendHeader(table.Row{"Module", "Kind", "Imports", "Imported by", "Unresolved"})

	for _, module := range g.Modules() {
		dependencies, err := depgraph.Dependencies(g, module.Path)
		if err != nil {
			return "", err
		}
		dependents, err := depgraph.Dependents(g, module.Path)
		if err != nil {
			return "", err
		}

		unresolved := make([]string, 0, len(module.Unresolved))
		for _, failure := range module.Unresolved {
			unresolved = append(unresolved, fmt.Sprintf("%s (%s)", failure.Specifier, failure.Kind))
		}

		tbl.AppendRow(table.Row{
			module.Path,
			module.Kind.String(),
			len(dependencies),
			len(dependents),
			strings.Join(unresolved, ", "),
		})
	}

	tbl.AppendFooter(table.Row{Summary(g)})
	return tbl.Render(), nil
}

// Summary describes the size of a graph in one line.
func Summary(g *depgraph.Graph) string {
	return fmt.Sprintf("%s modules, %s edges, %s cycles",
		humanize.Comma(int64(g.Len())),
		humanize.Comma(int64(len(g.Edges()))),
		humanize.Comma(int64(len(depgraph.FindCycles(g)))))
}

// NewTable returns a borderless table writer.
func NewTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false
	tbl.Style().Format.Footer = text.FormatDefault
	return tbl
}

// WriteList writes items one per line in text format, or as a JSON array.
func WriteList(w io.Writer, format OutputFormat, items []string) error {
	if format == OutputFormatJSON {
		if items == nil {
			items = []string{}
		}
		return WriteJSON(w, items)
	}

	for _, item := range items {
		if _, err := fmt.Fprintln(w, item); err != nil {
			return err
		}
	}
	return nil
}
