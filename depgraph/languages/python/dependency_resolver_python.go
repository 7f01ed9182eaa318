package python

import (
	"path"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"
)

const (
	variant      = "python"
	initFile     = "__init__.py"
	sourceSuffix = ".py"
)

type resolver struct {
	ctx *langsupport.Context
}

// Resolve maps dotted module names to files. Relative imports (".helpers",
// "..utils.slugify") are anchored at the importing package; absolute imports
// are tried from the project root and then by suffix against known modules.
func (r resolver) Resolve(specifier, from string) (langsupport.Resolution, error) {
	if err := r.ctx.CheckRequest(specifier, from); err != nil {
		return langsupport.Resolution{}, err
	}

	dir := path.Dir(langsupport.CanonicalPath(from))
	return r.ctx.Cache.Lookup(variant, dir, specifier, func() (langsupport.Resolution, error) {
		if strings.HasPrefix(specifier, ".") {
			return r.resolveRelative(specifier, dir), nil
		}
		return r.resolveAbsolute(specifier), nil
	})
}

func (r resolver) resolveRelative(specifier, dir string) langsupport.Resolution {
	res := langsupport.Resolution{Specifier: specifier, Status: langsupport.StatusMissing}

	dots := len(specifier) - len(strings.TrimLeft(specifier, "."))
	base := dir
	for i := 0; i < dots-1; i++ {
		base = path.Join(base, "..")
	}
	if langsupport.OutsideRoot(base) {
		res.Status = langsupport.StatusExternal
		return res
	}

	modulePath := strings.ReplaceAll(specifier[dots:], ".", "/")
	for _, candidate := range candidates(path.Join(base, modulePath), modulePath == "") {
		if r.ctx.FileExists(candidate) {
			res.Path = candidate
			res.Status = langsupport.StatusResolved
			return res
		}
	}
	return res
}

func (r resolver) resolveAbsolute(specifier string) langsupport.Resolution {
	res := langsupport.Resolution{Specifier: specifier, Status: langsupport.StatusExternal}

	modulePath := strings.ReplaceAll(specifier, ".", "/")
	for _, candidate := range candidates(modulePath, false) {
		if r.ctx.FileExists(candidate) {
			res.Path = candidate
			res.Status = langsupport.StatusResolved
			return res
		}
	}

	if match, ok := r.matchKnownSuffix(modulePath); ok {
		res.Path = match
		res.Status = langsupport.StatusResolved
		return res
	}

	top, _, _ := strings.Cut(modulePath, "/")
	if r.ctx.FileExists(top+sourceSuffix) || r.ctx.DirExists(top) {
		res.Status = langsupport.StatusMissing
	}
	return res
}

// matchKnownSuffix finds input modules under a source directory, e.g.
// "app.core" matching "src/app/core.py".
func (r resolver) matchKnownSuffix(modulePath string) (string, bool) {
	fileSuffix := "/" + modulePath + sourceSuffix
	packageSuffix := "/" + path.Join(modulePath, initFile)

	var matches []string
	for known := range r.ctx.Known {
		if strings.HasSuffix(known, fileSuffix) || strings.HasSuffix(known, packageSuffix) {
			matches = append(matches, known)
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[0], true
}

func candidates(base string, packageOnly bool) []string {
	if packageOnly {
		return []string{path.Join(base, initFile)}
	}
	return []string{base + sourceSuffix, path.Join(base, initFile)}
}
