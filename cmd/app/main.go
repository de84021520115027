package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nived-gurung/trekbooking/api"
	"github.com/nived-gurung/trekbooking/config"
	"github.com/nived-gurung/trekbooking/internal/bootstrap"
	"github.com/nived-gurung/trekbooking/internal/cache"
	"github.com/nived-gurung/trekbooking/internal/domain"
	"github.com/nived-gurung/trekbooking/internal/kafka"
	"github.com/nived-gurung/trekbooking/internal/observability"
	"github.com/nived-gurung/trekbooking/internal/repository"
	"github.com/nived-gurung/trekbooking/internal/service/booking"
	"github.com/nived-gurung/trekbooking/internal/service/catalog"
	"github.com/nived-gurung/trekbooking/internal/service/identity"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	identityService := identity.NewIdentityService(userRepo)
	catalogService := catalog.NewCatalogService(catalogRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		catalogRepo,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.WithLogger(log),
	)

	// The session layer is external to this service: requests identify
	// themselves with basic auth and the identity service verifies it.
	currentUser := func(c *gin.Context) (*domain.User, error) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			return nil, domain.ErrInvalidCredentials
		}
		return identityService.Authenticate(c.Request.Context(), username, password)
	}

	handlers := bootstrap.Handlers{
		Auth:        api.NewAuthHandler(identityService),
		Catalog:     api.NewCatalogHandler(catalogService),
		Bookings:    api.NewBookingHandler(bookingService),
		CurrentUser: currentUser,
	}

	if err := bootstrap.Run(ctx, cfg, log, handlers); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
