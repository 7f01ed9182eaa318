package typescript

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

type tsconfig struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// PathAliases parses compilerOptions.paths from the content of the tsconfig
// file at tsconfigPath and returns them as prefix -> project-relative target,
// ready for langsupport.WithAliases.
//
// Targets are relative to baseUrl, or to the tsconfig directory when baseUrl
// is unset. Only exact patterns and patterns ending in "/*" are supported, the
// first target of each pattern wins, and targets outside root are skipped.
// "extends" is not followed.
func PathAliases(data []byte, tsconfigPath, root string) (map[string]string, error) {
	// tsconfig allows comments and trailing commas.
	data, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tsconfig %s: %w", tsconfigPath, err)
	}

	var cfg tsconfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tsconfig %s: %w", tsconfigPath, err)
	}

	absConfig, err := filepath.Abs(tsconfigPath)
	if err != nil {
		return nil, err
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	base := filepath.Join(filepath.Dir(absConfig), filepath.FromSlash(cfg.CompilerOptions.BaseURL))

	aliases := make(map[string]string, len(cfg.CompilerOptions.Paths))
	for pattern, targets := range cfg.CompilerOptions.Paths {
		if len(targets) == 0 {
			continue
		}
		prefix, target, ok := splitWildcard(pattern, targets[0])
		if !ok {
			continue
		}

		rel, err := filepath.Rel(absRoot, filepath.Join(base, filepath.FromSlash(target)))
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		aliases[prefix] = filepath.ToSlash(rel)
	}
	return aliases, nil
}

func splitWildcard(pattern, target string) (string, string, bool) {
	prefix, wildcard := strings.CutSuffix(pattern, "/*")
	dir, targetWildcard := strings.CutSuffix(target, "/*")
	if wildcard != targetWildcard || prefix == "" {
		return "", "", false
	}
	if strings.Contains(prefix, "*") || strings.Contains(dir, "*") {
		return "", "", false
	}
	return prefix, dir, true
}
