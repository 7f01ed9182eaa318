package registry

import (
	"path"
	"slices"

	"github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"
	"github.com/LegacyCodeHQ/modgraph/depgraph/languages/javascript"
	"github.com/LegacyCodeHQ/modgraph/depgraph/languages/python"
	"github.com/LegacyCodeHQ/modgraph/depgraph/languages/typescript"
	"github.com/src-d/enry/v2"
)

var modules = []langsupport.Module{
	javascript.Module{},
	python.Module{},
	typescript.Module{},
}

// fallback handles modules whose language is not registered.
var fallback langsupport.Module = javascript.Module{}

// Language describes one supported import syntax.
type Language struct {
	Name       string
	Extensions []string
	Maturity   langsupport.MaturityLevel
}

// Modules returns supported language modules in deterministic order.
func Modules() []langsupport.Module {
	return append([]langsupport.Module(nil), modules...)
}

// SupportedLanguages lists the registered languages with their extensions.
func SupportedLanguages() []Language {
	languages := make([]Language, 0, len(modules))
	for _, module := range modules {
		languages = append(languages, Language{
			Name:       module.Name(),
			Extensions: append([]string(nil), module.Extensions()...),
			Maturity:   module.Maturity(),
		})
	}
	return languages
}

// ModuleForExtension returns the module registered for the provided extension.
func ModuleForExtension(ext string) (langsupport.Module, bool) {
	for _, module := range modules {
		if slices.Contains(module.Extensions(), ext) {
			return module, true
		}
	}

	return nil, false
}

// ModuleForPath picks the module for a source path: by detected language
// first, then by extension.
func ModuleForPath(modulePath string) (langsupport.Module, bool) {
	for _, language := range enry.GetLanguagesByExtension(path.Base(modulePath), nil, nil) {
		for _, module := range modules {
			if slices.Contains(module.Languages(), language) {
				return module, true
			}
		}
	}

	return ModuleForExtension(path.Ext(modulePath))
}

// NewResolver creates a resolver that dispatches each request to the variant
// matching the importing module's language. Aliases apply to every variant
// whose specifiers are paths.
func NewResolver(ctx *langsupport.Context, aliases map[string]string) langsupport.Resolver {
	resolvers := make(map[string]langsupport.Resolver, len(modules))
	for _, module := range modules {
		resolver := module.NewResolver(ctx)
		if _, dotted := module.(python.Module); !dotted {
			resolver = langsupport.WithAliases(aliases, resolver)
		}
		resolvers[module.Name()] = resolver
	}

	return langsupport.ResolverFunc(func(specifier, from string) (langsupport.Resolution, error) {
		module, ok := ModuleForPath(from)
		if !ok {
			module = fallback
		}
		return resolvers[module.Name()].Resolve(specifier, from)
	})
}
