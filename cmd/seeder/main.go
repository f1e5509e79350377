package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"magic_villa/internal/adapters/catalog"
	"magic_villa/internal/adapters/observability"
	redisad "magic_villa/internal/adapters/redis"
	"magic_villa/internal/app"
	"magic_villa/internal/domain"
	"magic_villa/internal/shared"
	"magic_villa/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("load .env failed")
	}
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, err := shared.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	observability.SetLevel(cfg.LogLevel)

	log.Info().
		Str("source", cfg.Seed.SourceURL).
		Int("workers", cfg.Seed.Workers).
		Msg("seeder starting")

	st, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("open store failed")
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	villas, err := loadVillas(ctx, cfg.Seed)
	if err != nil {
		log.Fatal().Err(err).Msg("load villas failed")
	}

	cache, closeCache := connectCache(ctx, cfg.Redis)
	defer closeCache()

	created, skipped, failed := seed(ctx, app.NewCommandService(st, cache), villas, cfg.Seed.Workers)
	log.Info().
		Int64("created", created).
		Int64("skipped", skipped).
		Int64("failed", failed).
		Msg("seeding completed")
}

// connectCache returns the API's read cache so seeded writes invalidate it. The
// result is a nil interface when REDIS_ADDR is empty or unreachable.
func connectCache(ctx context.Context, c shared.Redis) (domain.Cache, func()) {
	if c.Addr == "" {
		return nil, func() {}
	}
	rc, err := redisad.Connect(ctx, c.Addr, c.Password, c.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", c.Addr).Msg("redis unreachable, cached lists may stay stale until TTL")
		return nil, func() {}
	}
	return rc, func() { _ = rc.Close() }
}

func loadVillas(ctx context.Context, c shared.Seed) ([]app.VillaCreateDTO, error) {
	if c.SourceURL == "" {
		out := make([]app.VillaCreateDTO, 0, len(shared.SeedVillas))
		for _, v := range shared.SeedVillas {
			out = append(out, app.VillaCreateDTO{Name: v.Name, Details: v.Details, Rate: v.Rate,
				Sqft: v.Sqft, Occupancy: v.Occupancy, ImageURL: v.ImageURL, Amenity: v.Amenity})
		}
		return out, nil
	}
	client, err := catalog.New(c.SourceURL, c.SourceKey, 5)
	if err != nil {
		return nil, err
	}
	return client.GetVillas(ctx)
}

// seed creates villas with at most workers in flight. Names that already exist are
// skipped, so running it twice is harmless.
func seed(ctx context.Context, cmd *app.CommandService, villas []app.VillaCreateDTO, workers int) (created, skipped, failed int64) {
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for _, v := range villas {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("seeding interrupted")
			break
		}

		wg.Add(1)
		go func(in app.VillaCreateDTO) {
			defer wg.Done()
			defer sem.Release(1)

			out, err := cmd.Create(ctx, &in)
			switch {
			case errors.Is(err, domain.ErrConflict):
				atomic.AddInt64(&skipped, 1)
				log.Info().Str("name", in.Name).Msg("villa exists, skipped")
			case err != nil:
				atomic.AddInt64(&failed, 1)
				log.Warn().Str("name", in.Name).Err(err).Msg("seed failed")
			default:
				atomic.AddInt64(&created, 1)
				log.Info().Int64("id", out.ID).Str("name", in.Name).Msg("seed ok")
			}
		}(v)
	}

	wg.Wait()
	return created, skipped, failed
}
