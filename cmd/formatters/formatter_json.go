package formatters

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
)

// JSONFormatter formats dependency graphs as their JSON snapshot.
type JSONFormatter struct{}

// Format converts the dependency graph to JSON format.
func (f *JSONFormatter) Format(g *depgraph.Graph) (string, error) {
	data, err := json.MarshalIndent(g.Snapshot(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
