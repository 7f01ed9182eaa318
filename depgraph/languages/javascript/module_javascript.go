package javascript

import "github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"

type Module struct{}

func (Module) Name() string {
	return "JavaScript"
}

func (Module) Languages() []string {
	return []string{"JavaScript", "JSX"}
}

func (Module) Extensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs"}
}

func (Module) Maturity() langsupport.MaturityLevel {
	return langsupport.MaturityActivelyTested
}

func (Module) NewResolver(ctx *langsupport.Context) langsupport.Resolver {
	return NewPathResolver(ctx, "javascript", DefaultExtensions)
}
