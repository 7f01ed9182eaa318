package formatters

import (
	"fmt"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
)

// Formatter is the interface that all graph formatters must implement.
type Formatter interface {
	// Format converts a dependency graph to a formatted string representation.
	Format(g *depgraph.Graph) (string, error)
}

// NewFormatter creates a Formatter for the specified format type.
func NewFormatter(format string) (Formatter, error) {
	f, ok := ParseOutputFormat(format)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s (valid options: %s)", format, SupportedFormats())
	}

	switch f {
	case OutputFormatJSON:
		return &JSONFormatter{}, nil
	default:
		return &TextFormatter{}, nil
	}
}
