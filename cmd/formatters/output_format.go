package formatters

import "strings"

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

var outputFormats = []OutputFormat{OutputFormatText, OutputFormatJSON}

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat parses a format name, ignoring case.
func ParseOutputFormat(name string) (OutputFormat, bool) {
	for _, f := range outputFormats {
		if strings.EqualFold(name, f.String()) {
			return f, true
		}
	}
	return "", false
}

// SupportedFormats lists the format names for help and error messages.
func SupportedFormats() string {
	names := make([]string, 0, len(outputFormats))
	for _, f := range outputFormats {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}
