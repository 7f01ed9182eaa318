// Package load turns command-line options into a built dependency graph:
// configuration, import map, resolver and build, in that order.
package load

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"
	"github.com/LegacyCodeHQ/modgraph/depgraph/languages/typescript"
	"github.com/LegacyCodeHQ/modgraph/depgraph/registry"
	"github.com/LegacyCodeHQ/modgraph/importmap"
	"github.com/LegacyCodeHQ/modgraph/internal/config"
	"github.com/LegacyCodeHQ/modgraph/internal/logging"
	"github.com/LegacyCodeHQ/modgraph/vcs"
	"github.com/LegacyCodeHQ/modgraph/vcs/git"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// stdinPath reads the import map from standard input.
const stdinPath = "-"

// Options holds the flags shared by every command that builds a graph.
// Zero values defer to the configuration file.
type Options struct {
	ConfigPath  string
	ImportMap   string
	Format      string
	Root        string
	Commit      string
	Scope       []string
	Exclude     []string
	EntryPoints []string
	Extensions  []string
	TSConfig    string
	Workers     int
	LogLevel    string

	// Fs backs resolution and import map reads. Defaults to the OS filesystem.
	Fs afero.Fs
}

// AddFlags registers the shared graph flags on cmd.
func AddFlags(cmd *cobra.Command, opts *Options) {
	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "Config file (default: .modgraph.yaml in the current or home directory)")
	flags.StringVarP(&opts.ImportMap, "imports", "m", "", "Import map file (.json or .yaml), or - for stdin")
	flags.StringVar(&opts.Format, "imports-format", "", "Import map format when reading stdin (json, yaml)")
	flags.StringVarP(&opts.Root, "root", "r", "", "Project root that module paths are relative to")
	flags.StringVarP(&opts.Commit, "commit", "c", "", "Read the import map and resolve imports against the tree of this git commit")
	flags.StringSliceVar(&opts.Scope, "scope", nil, "Glob patterns of in-scope modules (comma-separated)")
	flags.StringSliceVarP(&opts.Exclude, "exclude", "x", nil, "Regular expressions of module paths to skip (comma-separated)")
	flags.StringSliceVarP(&opts.EntryPoints, "entry", "e", nil, "Entry point modules, never reported as orphans (comma-separated)")
	flags.StringSliceVar(&opts.Extensions, "extensions", nil, "Extension probing order for extensionless imports (comma-separated)")
	flags.StringVar(&opts.TSConfig, "tsconfig", "", "tsconfig.json whose compilerOptions.paths become import aliases")
	flags.IntVarP(&opts.Workers, "workers", "w", 0, "Concurrent resolution workers (default: GOMAXPROCS)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// Result is a built graph together with the settings that produced it.
type Result struct {
	Graph   *depgraph.Graph
	Config  *config.Config
	Logger  *slog.Logger
	Imports depgraph.ImportMap
}

// Config loads the configuration file and applies flag overrides.
func Config(opts *Options) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.ImportMap != "" {
		cfg.ImportMap = opts.ImportMap
	}
	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	if len(opts.Scope) > 0 {
		cfg.Scope = opts.Scope
	}
	if len(opts.Exclude) > 0 {
		cfg.Exclude = opts.Exclude
	}
	if len(opts.EntryPoints) > 0 {
		cfg.EntryPoints = opts.EntryPoints
	}
	if len(opts.Extensions) > 0 {
		cfg.Extensions = opts.Extensions
	}
	if opts.TSConfig != "" {
		cfg.TSConfig = opts.TSConfig
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate flags: %w", err)
	}
	return cfg, nil
}

// Graph builds the dependency graph described by opts. Logs go to the
// command's error stream.
func Graph(ctx context.Context, cmd *cobra.Command, opts *Options) (*Result, error) {
	cfg, err := Config(opts)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	src, err := source(cfg, opts)
	if err != nil {
		return nil, err
	}

	imports, err := readImports(cmd.InOrStdin(), cfg, opts, src.Read)
	if err != nil {
		return nil, err
	}

	graph, err := Build(ctx, imports, cfg, src, logger)
	if err != nil {
		return nil, err
	}

	return &Result{Graph: graph, Config: cfg, Logger: logger, Imports: imports}, nil
}

// Source is the project tree a build resolves against.
type Source struct {
	// Fs answers file existence checks.
	Fs afero.Fs
	// Read returns file contents such as the tsconfig. Defaults to reading Fs.
	Read vcs.ContentReader
}

// Build resolves imports against cfg.Root in src and assembles the graph.
func Build(ctx context.Context, imports depgraph.ImportMap, cfg *config.Config, src Source, logger *slog.Logger) (*depgraph.Graph, error) {
	imports, err := importmap.Filter(imports, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	if src.Read == nil {
		src.Read = vcs.FilesystemContentReader(src.Fs)
	}
	aliases, err := resolveAliases(cfg, root, src.Read)
	if err != nil {
		return nil, err
	}

	cache, err := langsupport.NewCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	resolverCtx := langsupport.NewContext(root, src.Fs, imports.Paths())
	resolverCtx.Extensions = cfg.Extensions
	resolverCtx.Cache = cache

	graph, err := depgraph.BuildDependencyGraph(ctx, imports,
		registry.NewResolver(resolverCtx, aliases),
		depgraph.WithEntryPoints(cfg.EntryPoints...),
		depgraph.WithScope(cfg.Scope...),
		depgraph.WithWorkers(cfg.Workers),
		depgraph.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}

	hits, misses := cache.Stats()
	logger.Debug("resolution cache", "hits", hits, "misses", misses)

	return graph, nil
}

// resolveAliases merges tsconfig paths with configured aliases. Configured
// aliases win on equal prefixes.
func resolveAliases(cfg *config.Config, root string, read vcs.ContentReader) (map[string]string, error) {
	configured := cfg.AliasMap()
	if cfg.TSConfig == "" {
		return configured, nil
	}

	tsconfigPath, err := filepath.Abs(cfg.TSConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tsconfig path: %w", err)
	}
	data, err := read(tsconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tsconfig: %w", err)
	}
	aliases, err := typescript.PathAliases(data, tsconfigPath, root)
	if err != nil {
		return nil, err
	}

	for prefix, target := range configured {
		aliases[strings.TrimSuffix(prefix, "/")] = target
	}
	return aliases, nil
}

func readImports(stdin io.Reader, cfg *config.Config, opts *Options, read vcs.ContentReader) (depgraph.ImportMap, error) {
	switch {
	case cfg.ImportMap == "":
		return nil, fmt.Errorf("no import map given: pass --imports or set import_map in the config file")

	case cfg.ImportMap == stdinPath:
		format, err := importmap.ParseFormat(defaultString(opts.Format, string(importmap.FormatJSON)))
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read import map from stdin: %w", err)
		}
		return importmap.Decode(data, format)

	default:
		return importmap.Load(read, cfg.ImportMap)
	}
}

// source returns the working tree, or the tree of opts.Commit when set so
// the import map and file existence checks agree.
func source(cfg *config.Config, opts *Options) (Source, error) {
	if opts.Commit == "" {
		return Source{Fs: opts.fs(), Read: vcs.FilesystemContentReader(opts.fs())}, nil
	}

	if cfg.ImportMap == stdinPath {
		return Source{}, fmt.Errorf("--commit cannot be used when reading the import map from stdin")
	}
	if err := git.ValidateCommit(cfg.Root, opts.Commit); err != nil {
		return Source{}, err
	}
	fs, err := git.CommitFs(cfg.Root, opts.Commit)
	if err != nil {
		return Source{}, err
	}
	return Source{Fs: fs, Read: git.CommitContentReader(cfg.Root, opts.Commit)}, nil
}

func (o *Options) fs() afero.Fs {
	if o.Fs == nil {
		return afero.NewOsFs()
	}
	return o.Fs
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
