package typescript

import (
	"github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"
	"github.com/LegacyCodeHQ/modgraph/depgraph/languages/javascript"
)

// resolutionOrder follows the TypeScript compiler: sources before emitted JavaScript.
var resolutionOrder = []string{".ts", ".tsx", ".d.ts", ".js", ".jsx"}

type Module struct{}

func (Module) Name() string {
	return "TypeScript"
}

func (Module) Languages() []string {
	return []string{"TypeScript", "TSX"}
}

func (Module) Extensions() []string {
	return []string{".ts", ".tsx", ".mts", ".cts"}
}

func (Module) Maturity() langsupport.MaturityLevel {
	return langsupport.MaturityBasicTests
}

func (Module) NewResolver(ctx *langsupport.Context) langsupport.Resolver {
	return javascript.NewPathResolver(ctx, "typescript", resolutionOrder)
}
