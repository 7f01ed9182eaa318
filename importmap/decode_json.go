package importmap

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schema []byte

var schemaLoader = gojsonschema.NewBytesLoader(schema)

func decodeJSON(data []byte) (depgraph.ImportMap, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if !result.Valid() {
		return nil, schemaError(result.Errors())
	}

	// The schema has been checked, so only key order and uniqueness remain.
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	imports := depgraph.ImportMap{}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid JSON: unexpected token %v", tok)
		}
		if seen[key] {
			return nil, duplicateKey(key)
		}
		seen[key] = true

		var specifiers []string
		if err := dec.Decode(&specifiers); err != nil {
			return nil, fmt.Errorf("invalid JSON for module %q: %w", key, err)
		}
		imports = append(imports, depgraph.ModuleImports{Path: key, Specifiers: specifiers})
	}

	return imports, nil
}

func schemaError(errs []gojsonschema.ResultError) error {
	details := make([]string, 0, len(errs))
	for _, e := range errs {
		details = append(details, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return &depgraph.InvalidInputError{Reason: strings.Join(details, "; ")}
}
