package importmap

import (
	"fmt"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"gopkg.in/yaml.v3"
)

const (
	tagString = "!!str"
	tagNull   = "!!null"
)

func decodeYAML(data []byte) (depgraph.ImportMap, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	imports := depgraph.ImportMap{}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return imports, nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, &depgraph.InvalidInputError{
			Reason: fmt.Sprintf("line %d: expected a mapping of module paths to specifier lists", root.Line),
		}
	}

	seen := make(map[string]bool, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, &depgraph.InvalidInputError{
				Reason: fmt.Sprintf("line %d: module path must be a string", keyNode.Line),
			}
		}

		key := keyNode.Value
		if seen[key] {
			return nil, duplicateKey(key)
		}
		seen[key] = true

		specifiers, err := yamlSpecifiers(key, resolveAlias(root.Content[i+1]))
		if err != nil {
			return nil, err
		}
		imports = append(imports, depgraph.ModuleImports{Path: key, Specifiers: specifiers})
	}

	return imports, nil
}

// yamlSpecifiers accepts a sequence of strings. A null value reads as no imports.
func yamlSpecifiers(key string, node *yaml.Node) ([]string, error) {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == tagNull {
		return []string{}, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, &depgraph.InvalidInputError{
			Module: key,
			Reason: fmt.Sprintf("line %d: expected a list of import specifiers", node.Line),
		}
	}

	specifiers := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.ScalarNode || item.ShortTag() != tagString {
			return nil, &depgraph.InvalidInputError{
				Module: key,
				Reason: fmt.Sprintf("line %d: import specifier must be a string", item.Line),
			}
		}
		specifiers = append(specifiers, item.Value)
	}
	return specifiers, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
