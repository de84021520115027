package main

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nived-gurung/trekbooking/config"
	"github.com/nived-gurung/trekbooking/internal/cache"
	"github.com/nived-gurung/trekbooking/internal/ingest"
	"github.com/nived-gurung/trekbooking/internal/observability"
	"github.com/nived-gurung/trekbooking/internal/repository"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		bootLog := observability.NewLogger("")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := observability.NewLogger(cfg.Env)

	fixtures, err := ingest.LoadFixtures(cfg.Catalog.FixturesPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Catalog.FixturesPath).Msg("load fixtures")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
	seeder := ingest.NewService(repository.NewCatalogRepository(pool), redisCache, log)

	inserted, err := seeder.Seed(ctx, fixtures.Treks, fixtures.Packages)
	if err != nil {
		log.Fatal().Err(err).Msg("seed catalog")
	}
	log.Info().Int("inserted", inserted).Msg("seeding complete")
}
