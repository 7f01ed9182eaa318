package python

import "github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"

type Module struct{}

func (Module) Name() string {
	return "Python"
}

func (Module) Languages() []string {
	return []string{"Python"}
}

func (Module) Extensions() []string {
	return []string{".py", ".pyi"}
}

func (Module) Maturity() langsupport.MaturityLevel {
	return langsupport.MaturityBasicTests
}

func (Module) NewResolver(ctx *langsupport.Context) langsupport.Resolver {
	return resolver{ctx: ctx}
}
