package depgraph

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"
	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// BuildOption configures BuildDependencyGraph.
type BuildOption func(*buildOptions)

type buildOptions struct {
	entryPoints []string
	scope       []string
	workers     int
	logger      *slog.Logger
}

// WithEntryPoints designates root modules, exempt from orphan classification.
func WithEntryPoints(paths ...string) BuildOption {
	return func(o *buildOptions) {
		o.entryPoints = append(o.entryPoints, paths...)
	}
}

// WithScope declares the project scope as doublestar patterns. Resolved
// modules that were not analyzed and match no pattern are marked unanalyzed.
// Without patterns every module is in scope.
func WithScope(patterns ...string) BuildOption {
	return func(o *buildOptions) {
		o.scope = append(o.scope, patterns...)
	}
}

// WithWorkers bounds the number of modules resolved concurrently.
func WithWorkers(n int) BuildOption {
	return func(o *buildOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(o *buildOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// BuildDependencyGraph resolves every module's specifiers and assembles an
// immutable graph. Resolution runs concurrently per module; assembly starts only
// after every resolution has finished and follows input order, so the same
// input always yields the same modules and edges in the same order.
func BuildDependencyGraph(
	ctx context.Context,
	imports ImportMap,
	resolver langsupport.Resolver,
	opts ...BuildOption,
) (*Graph, error) {
	if resolver == nil {
		return nil, fmt.Errorf("dependency resolver is required")
	}

	o := buildOptions{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	normalized, err := imports.normalize()
	if err != nil {
		return nil, err
	}
	for _, pattern := range o.scope {
		if !doublestar.ValidatePattern(pattern) {
			return nil, &InvalidInputError{Reason: fmt.Sprintf("invalid scope pattern %q", pattern)}
		}
	}

	resolutions, err := resolveAll(ctx, normalized, resolver, o.workers)
	if err != nil {
		return nil, err
	}

	graph, err := assemble(normalized, resolutions, o)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("dependency graph built",
		"modules", graph.Len(),
		"edges", len(graph.edges),
		"analyzed", len(normalized))

	return graph, nil
}

// resolveAll resolves each module on a bounded worker pool. Every worker
// writes only its own slot; Wait is the barrier before assembly.
func resolveAll(
	ctx context.Context,
	imports ImportMap,
	resolver langsupport.Resolver,
	workers int,
) ([][]langsupport.Resolution, error) {
	results := make([][]langsupport.Resolution, len(imports))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, entry := range imports {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			resolved := make([]langsupport.Resolution, 0, len(entry.Specifiers))
			for _, spec := range entry.Specifiers {
				res, err := resolver.Resolve(spec, entry.Path)
				if err != nil {
					return fmt.Errorf("failed to resolve %q in %s: %w", spec, entry.Path, err)
				}
				resolved = append(resolved, res)
			}
			results[i] = resolved
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func assemble(imports ImportMap, resolutions [][]langsupport.Resolution, o buildOptions) (*Graph, error) {
	graph := newGraph()

	// First pass: every analyzed module exists before any edge is added.
	for _, entry := range imports {
		m := &Module{
			Path:       entry.Path,
			Kind:       KindAnalyzed,
			Specifiers: entry.Specifiers,
		}
		if err := graph.addModule(m); err != nil {
			return nil, err
		}
	}

	// Second pass: edges and annotations in specifier order.
	for i, entry := range imports {
		source := graph.modules[entry.Path]
		for _, res := range resolutions[i] {
			source.Imports = append(source.Imports, res)

			if !res.Resolved() {
				source.Unresolved = append(source.Unresolved, &ResolutionError{
					Specifier: res.Specifier,
					From:      entry.Path,
					Kind:      res.Status,
				})
				o.logger.Debug("unresolved import",
					"module", entry.Path,
					"specifier", res.Specifier,
					"kind", res.Status.String())
				continue
			}

			target := langsupport.CanonicalPath(res.Path)
			if !graph.HasModule(target) {
				kind := KindLeaf
				if !inScope(target, o.scope) {
					kind = KindUnanalyzed
				}
				if err := graph.addModule(&Module{Path: target, Kind: kind}); err != nil {
					return nil, err
				}
			}

			if err := graph.addEdge(entry.Path, target); err != nil {
				return nil, err
			}
		}
	}

	for _, entry := range o.entryPoints {
		canonical := langsupport.CanonicalPath(entry)
		if !graph.HasModule(canonical) {
			return nil, &InvalidInputError{Module: canonical, Reason: "entry point is not a module of the graph"}
		}
		graph.entryPoints[canonical] = true
	}

	return graph, nil
}

func inScope(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
