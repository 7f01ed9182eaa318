package javascript

import (
	"path"
	"slices"
	"strings"

	"github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"
)

// DefaultExtensions is the probing order for extensionless specifiers.
var DefaultExtensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx"}

const vendorDir = "node_modules"

// PathResolver resolves relative ("./x", "../x") and root-absolute ("/x")
// specifiers against the project tree. Bare specifiers are external packages.
type PathResolver struct {
	ctx        *langsupport.Context
	variant    string
	extensions []string
}

// NewPathResolver creates a resolver probing extensions in order. The context's
// Extensions override them when set.
func NewPathResolver(ctx *langsupport.Context, variant string, extensions []string) *PathResolver {
	if len(ctx.Extensions) > 0 {
		extensions = ctx.Extensions
	}
	return &PathResolver{
		ctx:        ctx,
		variant:    variant,
		extensions: extensions,
	}
}

func (r *PathResolver) Resolve(specifier, from string) (langsupport.Resolution, error) {
	if err := r.ctx.CheckRequest(specifier, from); err != nil {
		return langsupport.Resolution{}, err
	}

	dir := path.Dir(langsupport.CanonicalPath(from))
	return r.ctx.Cache.Lookup(r.variant, dir, specifier, func() (langsupport.Resolution, error) {
		return r.resolve(specifier, dir), nil
	})
}

func (r *PathResolver) resolve(specifier, dir string) langsupport.Resolution {
	res := langsupport.Resolution{Specifier: specifier, Status: langsupport.StatusExternal}

	var base string
	switch {
	case isRelative(specifier):
		base = path.Join(dir, specifier)
	case strings.HasPrefix(specifier, "/"):
		base = path.Clean(strings.TrimPrefix(specifier, "/"))
	default:
		return res
	}

	if langsupport.OutsideRoot(base) || inVendorDir(base) {
		return res
	}

	for _, candidate := range r.candidates(base) {
		if r.ctx.FileExists(candidate) {
			res.Path = candidate
			res.Status = langsupport.StatusResolved
			return res
		}
	}

	res.Status = langsupport.StatusMissing
	return res
}

// candidates lists paths in probing order: the exact path when it carries an
// extension, then base+ext, then base/index+ext.
func (r *PathResolver) candidates(base string) []string {
	var out []string
	if path.Ext(base) != "" {
		out = append(out, base)
	}
	for _, ext := range r.extensions {
		out = append(out, base+ext)
	}
	for _, ext := range r.extensions {
		out = append(out, path.Join(base, "index"+ext))
	}
	return out
}

func isRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

func inVendorDir(p string) bool {
	return slices.Contains(strings.Split(p, "/"), vendorDir)
}
