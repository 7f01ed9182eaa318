package langsupport

// Module describes pluggable resolver support for one import syntax.
type Module interface {
	Name() string
	// Languages lists the linguist language names handled by this module.
	Languages() []string
	Extensions() []string
	Maturity() MaturityLevel
	NewResolver(ctx *Context) Resolver
}
