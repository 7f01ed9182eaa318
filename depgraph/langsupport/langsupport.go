package langsupport

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Status classifies the outcome of resolving one import specifier.
type Status int

const (
	StatusResolved Status = iota
	// StatusExternal marks specifiers that point outside the project root,
	// such as third-party packages.
	StatusExternal
	// StatusMissing marks specifiers that look internal but match no file.
	StatusMissing
)

func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusExternal:
		return "external"
	case StatusMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving a raw specifier found in a module.
// Path is only set when Status is StatusResolved.
type Resolution struct {
	Specifier string
	Path      string
	Status    Status
}

// Resolved reports whether the specifier mapped to a project module.
func (r Resolution) Resolved() bool {
	return r.Status == StatusResolved
}

// Resolver resolves raw import specifiers for one import syntax.
type Resolver interface {
	Resolve(specifier, from string) (Resolution, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(specifier, from string) (Resolution, error)

func (f ResolverFunc) Resolve(specifier, from string) (Resolution, error) {
	return f(specifier, from)
}

// Context contains project data shared across language resolvers during one build.
type Context struct {
	// Root is the project root on Fs. Module paths are relative to it.
	Root string
	Fs   afero.Fs
	// Known holds the canonical paths of every module supplied as input.
	Known map[string]bool
	// Extensions overrides the per-language extension probing order when set.
	Extensions []string
	// Cache memoizes resolutions for the lifetime of one build. May be nil.
	Cache *Cache
}

// NewContext creates a resolver context for the given project root and input modules.
func NewContext(root string, fs afero.Fs, modules []string) *Context {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	known := make(map[string]bool, len(modules))
	for _, m := range modules {
		known[CanonicalPath(m)] = true
	}
	return &Context{
		Root:  root,
		Fs:    fs,
		Known: known,
	}
}

// CheckRequest validates the arguments every resolver receives.
func (c *Context) CheckRequest(specifier, from string) error {
	if specifier == "" {
		return fmt.Errorf("empty import specifier in %s", from)
	}
	if !c.Known[CanonicalPath(from)] {
		return fmt.Errorf("unknown importing module %s", from)
	}
	return nil
}

// FileExists reports whether a module path names an existing file.
// Modules supplied as input always exist.
func (c *Context) FileExists(modulePath string) bool {
	if c.Known[modulePath] {
		return true
	}
	info, err := c.Fs.Stat(c.fsPath(modulePath))
	return err == nil && !info.IsDir()
}

// DirExists reports whether a module path names an existing directory.
func (c *Context) DirExists(modulePath string) bool {
	prefix := modulePath + "/"
	for known := range c.Known {
		if strings.HasPrefix(known, prefix) {
			return true
		}
	}
	ok, err := afero.DirExists(c.Fs, c.fsPath(modulePath))
	return err == nil && ok
}

func (c *Context) fsPath(modulePath string) string {
	return filepath.Join(c.Root, filepath.FromSlash(modulePath))
}

// CanonicalPath normalizes a module path to its slash-separated, cleaned form.
func CanonicalPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// OutsideRoot reports whether a canonical module path escapes the project root.
func OutsideRoot(p string) bool {
	return p == ".." || strings.HasPrefix(p, "../")
}
