package langsupport

import (
	"path"
	"sort"
	"strings"
)

// Alias rewrites specifiers starting with Prefix to Target, a project-relative
// directory (tsconfig "paths", webpack "resolve.alias").
type Alias struct {
	Prefix string
	Target string
}

type aliasResolver struct {
	aliases []Alias
	next    Resolver
}

// WithAliases wraps next so aliased specifiers are rewritten to root-absolute
// specifiers before resolution. The longest matching prefix wins.
func WithAliases(aliases map[string]string, next Resolver) Resolver {
	if len(aliases) == 0 {
		return next
	}

	list := make([]Alias, 0, len(aliases))
	for prefix, target := range aliases {
		list = append(list, Alias{
			Prefix: strings.TrimSuffix(prefix, "/"),
			Target: CanonicalPath(target),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if len(list[i].Prefix) != len(list[j].Prefix) {
			return len(list[i].Prefix) > len(list[j].Prefix)
		}
		return list[i].Prefix < list[j].Prefix
	})

	return aliasResolver{aliases: list, next: next}
}

func (r aliasResolver) Resolve(specifier, from string) (Resolution, error) {
	rewritten, ok := r.rewrite(specifier)
	if !ok {
		return r.next.Resolve(specifier, from)
	}

	res, err := r.next.Resolve(rewritten, from)
	if err != nil {
		return Resolution{}, err
	}
	res.Specifier = specifier
	return res, nil
}

func (r aliasResolver) rewrite(specifier string) (string, bool) {
	for _, alias := range r.aliases {
		if specifier == alias.Prefix {
			return "/" + alias.Target, true
		}
		if rest, ok := strings.CutPrefix(specifier, alias.Prefix+"/"); ok {
			return "/" + path.Join(alias.Target, rest), true
		}
	}
	return "", false
}
