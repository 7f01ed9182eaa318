package depgraph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"
)

// ErrModuleNotFound is returned by queries naming a module absent from the graph.
var ErrModuleNotFound = errors.New("module not found")

// ResolutionError records a specifier that did not resolve to a project module.
// It is kept on the importing module and never aborts a build.
type ResolutionError struct {
	Specifier string
	From      string
	Kind      langsupport.Status
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: cannot resolve %q (%s)", e.From, e.Specifier, e.Kind)
}

// CycleError is returned by strict depth queries when a cycle is reachable
// from the queried module.
type CycleError struct {
	Module string
	Cycle  []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("depth of %s is undefined: dependency cycle %s",
		e.Module, strings.Join(e.Cycle, " -> "))
}

// InvalidInputError reports a malformed import map. Nothing is built when it
// is returned.
type InvalidInputError struct {
	Module string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Module == "" {
		return "invalid import map: " + e.Reason
	}
	return fmt.Sprintf("invalid import map: module %q: %s", e.Module, e.Reason)
}
