// Package importmap decodes the builder input: every discovered module mapped
// to its raw import specifiers. Key order is kept and duplicate keys are rejected.
package importmap

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/LegacyCodeHQ/modgraph/vcs"
)

// Format is an import map encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name as given on the command line.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported import map format %q (supported: json, yaml)", name)
	}
}

// FormatForPath picks the format from a file extension.
func FormatForPath(filePath string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(filePath), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer import map format of %s: no extension", filePath)
	}
	return ParseFormat(ext)
}

// Decode parses an import map in the given format.
func Decode(data []byte, format Format) (depgraph.ImportMap, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported import map format %q", format)
	}
}

// Load reads and decodes the import map at filePath.
func Load(read vcs.ContentReader, filePath string) (depgraph.ImportMap, error) {
	format, err := FormatForPath(filePath)
	if err != nil {
		return nil, err
	}

	data, err := read(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read import map %s: %w", filePath, err)
	}

	imports, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode import map %s: %w", filePath, err)
	}
	return imports, nil
}

// Filter drops modules whose path matches any of the exclude regular
// expressions. Specifiers are left untouched.
func Filter(imports depgraph.ImportMap, excludes []string) (depgraph.ImportMap, error) {
	if len(excludes) == 0 {
		return imports, nil
	}

	patterns := make([]*regexp.Regexp, 0, len(excludes))
	for _, exclude := range excludes {
		re, err := regexp.Compile(exclude)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", exclude, err)
		}
		patterns = append(patterns, re)
	}

	filtered := make(depgraph.ImportMap, 0, len(imports))
	for _, entry := range imports {
		if !matchesAny(patterns, entry.Path) {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func duplicateKey(key string) error {
	return &depgraph.InvalidInputError{Module: key, Reason: "duplicate module key"}
}
