package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"insuredevents/internal/bootstrap"
	"insuredevents/internal/bootstrap/config"
	"insuredevents/internal/bootstrap/logging"
	"insuredevents/internal/errs"
	"insuredevents/internal/infrastructure/httpapi"
	"insuredevents/internal/transport/httpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the insured events routes over HTTP",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = app.Config.Server.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.WithAttrs(ctx, slog.String("component", "serve"), slog.String("addr", addr))

		if watch, _ := cmd.Flags().GetBool("watch-config"); watch && app.Config.File != "" {
			if err := config.Watch(ctx, app.Config.File, reloadHandler(ctx, app.Client, app.Config)); err != nil {
				return errs.Wrap(err, "watch config")
			}
		}

		server := &http.Server{
			Addr:              addr,
			Handler:           httpserver.NewRouter(app.Facade),
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
		}

		serveErr := make(chan error, 1)
		go func() {
			logging.Info(ctx, "http server listening")
			serveErr <- server.ListenAndServe()
		}()

		select {
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return errs.Wrap(err, "listen and serve")
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logging.Info(ctx, "http server shutting down")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errs.Wrap(err, "shutdown http server")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default server.addr from config)")
	serveCmd.Flags().Bool("watch-config", true, "Apply api.headers and api.timeout edits without a restart")
}

// reloadHandler applies the settings that can change on a live client.
// Other keys are read once at start; a change to them is logged and needs a restart.
func reloadHandler(ctx context.Context, client *httpapi.Client, started config.Config) func(config.Config) {
	return func(cfg config.Config) {
		client.Reconfigure(cfg.API.Headers, cfg.API.Timeout)
		logging.Info(ctx, "upstream settings reloaded",
			slog.Int("headers", len(cfg.API.Headers)),
			slog.Duration("timeout", cfg.API.Timeout),
		)
		if cfg.API.BaseURL != started.API.BaseURL || cfg.Cache != started.Cache || cfg.Server != started.Server {
			logging.Warn(ctx, "config change needs a restart to take effect",
				slog.String("keys", "api.base_url, cache.*, server.*"),
			)
		}
	}
}
