package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	server "magic_villa/internal/adapters/http_server"
	"magic_villa/internal/adapters/observability"
	redisad "magic_villa/internal/adapters/redis"
	"magic_villa/internal/app"
	"magic_villa/internal/domain"
	"magic_villa/internal/shared"
	"magic_villa/internal/storage"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		cfg        shared.Config
	)

	root := &cobra.Command{
		Use:           "villa-api",
		Short:         "Villa CRUD HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			c, err := shared.Load(configPath)
			if err != nil {
				return err
			}
			cfg = c
			log.Logger = observability.NewLogger(cfg.AppEnv)
			observability.SetLevel(cfg.LogLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (environment variables override it)")
	root.SetUsageTemplate(root.UsageTemplate() + "\nEnvironment:\n" + shared.Usage() + "\n")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Create the schema if needed and serve the API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context(), cfg)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create the villas schema and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := storage.Open(cmd.Context(), cfg.DB)
				if err != nil {
					return err
				}
				defer st.Close()
				return st.Migrate(cmd.Context())
			},
		},
	)
	return root
}

func serve(ctx context.Context, cfg shared.Config) error {
	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// store
	st, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	// optional read cache; left as a nil interface when disabled
	var cache domain.Cache
	if cfg.Redis.Addr != "" {
		rc, err := redisad.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, cache disabled")
		} else {
			defer rc.Close()
			cache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.CacheTTL()).Msg("redis cache enabled")
		}
	}

	q := app.NewQueryService(st, cache, cfg.CacheTTL())
	c := app.NewCommandService(st, cache)

	// http
	srv := server.New(server.Options{
		RequestTimeout: cfg.HTTP.RequestTimeout,
		RateLimitRPS:   cfg.HTTP.RateLimitRPS,
		RateLimitBurst: cfg.HTTP.RateLimitBurst,
	})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, C: c})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
