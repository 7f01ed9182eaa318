package depgraph

import (
	"fmt"

	"github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"
)

// ModuleImports pairs a discovered module with its raw import specifiers in
// source order.
type ModuleImports struct {
	Path       string
	Specifiers []string
}

// ImportMap is the build input: every discovered module with its specifiers,
// in discovery order.
type ImportMap []ModuleImports

// Paths returns the module paths in input order.
func (m ImportMap) Paths() []string {
	paths := make([]string, 0, len(m))
	for _, entry := range m {
		paths = append(paths, entry.Path)
	}
	return paths
}

// normalize canonicalizes module paths and rejects duplicate or empty entries.
func (m ImportMap) normalize() (ImportMap, error) {
	seen := make(map[string]bool, len(m))
	out := make(ImportMap, 0, len(m))

	for _, entry := range m {
		if entry.Path == "" {
			return nil, &InvalidInputError{Reason: "empty module path"}
		}

		canonical := langsupport.CanonicalPath(entry.Path)
		if seen[canonical] {
			return nil, &InvalidInputError{Module: canonical, Reason: "duplicate module"}
		}
		seen[canonical] = true

		for i, spec := range entry.Specifiers {
			if spec == "" {
				return nil, &InvalidInputError{
					Module: canonical,
					Reason: fmt.Sprintf("empty import specifier at position %d", i),
				}
			}
		}

		out = append(out, ModuleImports{
			Path:       canonical,
			Specifiers: append([]string(nil), entry.Specifiers...),
		})
	}

	return out, nil
}
