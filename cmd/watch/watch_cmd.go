package watch

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/LegacyCodeHQ/modgraph/cmd/load"
	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/LegacyCodeHQ/modgraph/internal/logging"
	"github.com/spf13/cobra"
)

type watchOptions struct {
	load.Options
	port int
}

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the graph when the import map changes and serve it live",
		Long: `Watch the import map (and config file, if given) for changes, rebuild the
dependency graph after each burst of writes, and stream every build to
browsers connected to the local server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}

	load.AddFlags(cmd, &opts.Options)
	cmd.Flags().IntVarP(&opts.port, "port", "P", 0, "HTTP server port (default: watch.port from config, 4900)")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions) error {
	if opts.Commit != "" {
		return fmt.Errorf("--commit cannot be used with watch")
	}

	cfg, err := load.Config(&opts.Options)
	if err != nil {
		return err
	}
	if cfg.ImportMap == "" || cfg.ImportMap == "-" {
		return fmt.Errorf("watch needs an import map file: pass --imports or set import_map in the config file")
	}
	port := cfg.Watch.Port
	if opts.port != 0 {
		port = opts.port
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b := newBroker()
	p := &publisher{
		broker: b,
		logger: logger,
		build: func(ctx context.Context) (*depgraph.Graph, error) {
			result, err := load.Graph(ctx, cmd, &opts.Options)
			if err != nil {
				return nil, err
			}
			return result.Graph, nil
		},
	}

	if err := p.rebuild(ctx); err != nil {
		return fmt.Errorf("initial graph build failed: %w", err)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	srv := newServer(b, port, logger)
	go srv.Serve(ln)
	defer srv.Close()

	files := []string{cfg.ImportMap}
	if opts.ConfigPath != "" {
		files = append(files, opts.ConfigPath)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s\n", cfg.ImportMap)
	fmt.Fprintf(out, "Serving at http://localhost:%d\n", ln.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(out, "Press Ctrl+C to stop\n")

	return watchAndRebuild(ctx, files, func() {
		// Failures are published to clients and logged by rebuild.
		_ = p.rebuild(ctx)
	}, logger)
}
