package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/procmap/procmap/internal/config"
	"github.com/procmap/procmap/internal/server"
	"github.com/procmap/procmap/pkg/cache"
	"github.com/procmap/procmap/pkg/pipeline"
	"github.com/procmap/procmap/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout and annotation HTTP API",
		Long: `Run the layout and annotation HTTP API.

Exposes POST /v1/layout, POST /v1/annotate, and GET /v1/layouts/{hash}.
The cache backend, layout archive, and engine caps come from the config
file; --addr overrides the listen address.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	layoutCache, err := serverCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(layoutCache, nil, c.Logger)
	defer runner.Close()

	var archive server.LayoutArchive
	if cfg.Store.URI != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		ls, err := store.New(connectCtx, store.Config{
			URI:        cfg.Store.URI,
			Database:   cfg.Store.Database,
			Collection: cfg.Store.Collection,
		})
		cancel()
		if err != nil {
			return fmt.Errorf("connect layout archive: %w", err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = ls.Close(closeCtx)
		}()
		archive = ls
		c.Logger.Info("layout archive enabled", "database", cfg.Store.Database)
	}

	srv := server.New(runner, archive, cfg, c.Logger)
	return srv.ListenAndServe(ctx)
}

// serverCache builds the cache backend named by the config.
func serverCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	case "", "file":
		dir := cfg.Cache.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
	return nil, fmt.Errorf("unknown cache backend: %q", cfg.Cache.Backend)
}
