package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/lily/internal/engine"
	"github.com/roach88/lily/internal/metrics"
	"github.com/roach88/lily/internal/server"
	"github.com/roach88/lily/internal/store"
)

// shutdownTimeout bounds how long in-flight requests may finish.
const shutdownTimeout = 5 * time.Second

// defaultServeQuota caps expansion for network callers unless --quota says otherwise.
const defaultServeQuota = 1_000_000

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr     string
	Database string
	Viewport string
	Quota    int
	Timeout  time.Duration
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator over HTTP",
		Long: `Start an HTTP server exposing:

  POST /generate   definition JSON in, mesh out (?format=json|obj|svg)
  GET  /healthz    liveness
  GET  /metrics    Prometheus metrics

The server stops gracefully on SIGINT or SIGTERM.

Examples:
  lily serve --addr :8080
  lily serve --db history.db --quota 2000000 --timeout 10s`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", opts.Addr)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to listen", err)
			}
			return runServe(ctx, opts, cmd, ln)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record generations in a SQLite history database")
	cmd.Flags().StringVar(&opts.Viewport, "viewport", defaultViewport, `fit meshes into WIDTHxHEIGHT ("none" keeps turtle coordinates)`)
	cmd.Flags().IntVar(&opts.Quota, "quota", defaultServeQuota, "maximum symbols in an expanded string (0 = unbounded)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "abort a generation after this long (0 = no limit)")

	return cmd
}

// runServe serves on ln until ctx is cancelled.
func runServe(ctx context.Context, opts *ServeOptions, cmd *cobra.Command, ln net.Listener) error {
	log := opts.Logger(cmd)

	viewport, err := parseViewport(opts.Viewport)
	if err != nil {
		ln.Close()
		return WrapExitError(ExitCommandError, "invalid flag", err)
	}

	collector := metrics.New()
	engineOpts := []engine.Option{
		engine.WithLogger(log),
		engine.WithSymbolQuota(opts.Quota),
		engine.WithRecorder(collector),
	}
	if viewport != nil {
		engineOpts = append(engineOpts, engine.WithViewport(*viewport))
	}

	handlerOpts := server.Options{
		Engine:   engine.New(engineOpts...),
		Viewport: viewport,
		Metrics:  collector.Handler(),
		Timeout:  opts.Timeout,
		Logger:   log,
	}
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			ln.Close()
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
		handlerOpts.History = st
	}

	srv := &http.Server{
		Handler:           server.NewHandler(handlerOpts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on %s\n", ln.Addr())
	log.Info("server started", "addr", ln.Addr().String(), "db", opts.Database)

	select {
	case err := <-serverErrors:
		return WrapExitError(ExitCommandError, "server error", err)

	case <-ctx.Done():
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			srv.Close()
		}
		if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return WrapExitError(ExitCommandError, "server error", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Server stopped")
		return nil
	}
}
