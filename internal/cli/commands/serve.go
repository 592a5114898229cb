package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flute-go/reflection/internal/cli/ui"
	"github.com/flute-go/reflection/internal/server"
)

type serveOptions struct {
	host string
	port int
}

// newServeCommand creates the serve command
func newServeCommand(opts *rootOptions) *cobra.Command {
	serveOpts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the snapshot over HTTP",
		Long: `Serve the snapshot over HTTP.

Endpoints (under server.api_prefix when set):
  GET /healthz        liveness
  GET /types          type summaries
  GET /types/{name}   metadata of one type

The snapshot file is re-read on every request, so rewriting it takes effect
without a restart. The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  flute serve
  flute serve --port 8080 --snapshot build/app.snapshot.json.gz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, opts, serveOpts)
		},
	}

	cmd.Flags().StringVar(&serveOpts.host, "host", "", "Listen host (overrides config)")
	cmd.Flags().IntVar(&serveOpts.port, "port", 0, "Listen port (overrides config)")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, opts *rootOptions, serveOpts *serveOptions) error {
	cfg, err := opts.settings()
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), opts.noColor))
		return &reportedError{err: err}
	}
	if serveOpts.host != "" {
		cfg.Server.Host = serveOpts.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serveOpts.port
	}

	logger, err := opts.logger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	handler := server.NewHandler(server.FileSource(cfg.Snapshot.Path), cfg.Server.APIPrefix, logger)
	srvCfg := server.DefaultConfig(handler)
	srvCfg.Address = cfg.Server.Addr()
	srvCfg.Logger = logger

	srv, err := server.New(srvCfg)
	if err != nil {
		return err
	}
	if err := srv.Listen(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess(
		fmt.Sprintf("Serving %s on http://%s%s", cfg.Snapshot.Path, srv.Addr(), cfg.Server.APIPrefix),
		cfg.Output.NoColor,
	))
	if _, err := os.Stat(cfg.Snapshot.Path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprint(cmd.ErrOrStderr(), ui.Warning(
			fmt.Sprintf("snapshot %s does not exist yet; /types answers 503 until it is written", cfg.Snapshot.Path),
			cfg.Output.NoColor,
		))
	}
	logger.Debug("serve configuration",
		zap.String("snapshot", cfg.Snapshot.Path),
		zap.String("addr", srv.Addr()),
		zap.String("api_prefix", cfg.Server.APIPrefix),
	)

	return srv.Run(ctx)
}
