package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrapi/internal/cache"
	"github.com/cristianadrielbraun/qrapi/internal/config"
	"github.com/cristianadrielbraun/qrapi/internal/handlers"
	"github.com/cristianadrielbraun/qrapi/internal/qrmatrix"
	"github.com/cristianadrielbraun/qrapi/internal/render"
)

func (c *CLI) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server. Settings come from defaults, the optional
config file and QRAPI_* environment variables, e.g. QRAPI_SERVER_ADDR or
QRAPI_CACHE_BACKEND. PORT is honoured when no address is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if c.logLevel == "" {
				if err := setLevel(c.Logger, cfg.LogLevel); err != nil {
					return err
				}
			}
			return c.serve(cmd.Context(), cfg)
		},
	}
}

// buildServer assembles the HTTP server for cfg. The returned cleanup
// releases the response cache.
func (c *CLI) buildServer(ctx context.Context, cfg *config.Config) (*http.Server, func(), error) {
	provider, err := qrmatrix.New(cfg.QR.Encoder)
	if err != nil {
		return nil, nil, err
	}

	store, err := cache.New(cfg.Cache)
	if err != nil {
		return nil, nil, err
	}
	if r, ok := store.(*cache.Redis); ok {
		if err := r.Ping(ctx); err != nil {
			c.Logger.WithError(err).Warn("Redis is unreachable, responses will be rendered uncached until it recovers")
		}
	}

	h := handlers.New(handlers.Options{
		Logger:        c.Logger,
		Provider:      provider,
		Renderer:      render.NewRenderer(render.WithPNGCompression(cfg.QR.PNGCompressionLevel())),
		Cache:         store,
		MaxDataLength: cfg.QR.MaxDataLength,
		MaxAge:        cfg.QR.CacheMaxAge,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handlers.NewRouter(h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			c.Logger.WithError(err).Warn("Failed to close cache")
		}
	}
	return srv, cleanup, nil
}

func (c *CLI) serve(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(gin.ReleaseMode)

	srv, cleanup, err := c.buildServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		c.Logger.WithFields(logrus.Fields{
			"addr":    cfg.Server.Addr,
			"encoder": cfg.QR.Encoder,
			"cache":   cfg.Cache.Backend,
		}).Info("qrapi listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("Received shutdown signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	c.Logger.Info("Server stopped")
	return nil
}
