package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nived-gurung/trekbooking/config"
	"github.com/nived-gurung/trekbooking/internal/kafka"
	"github.com/nived-gurung/trekbooking/internal/observability"
)

// The worker tails the booking events topic and records each transition
// as a structured audit line.
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

	consumer := kafka.NewConsumer(cfg.Kafka, log)
	defer consumer.Close()

	log.Info().Str("topic", cfg.Kafka.BookingEventsTopic).Msg("booking audit worker started")

	err = consumer.Consume(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
		log.Info().
			Str("type", event.Type).
			Str("kind", event.Kind).
			Str("reference", event.Reference).
			Int64("booking_id", event.BookingID).
			Int64("user_id", event.UserID).
			Int64("total_cents", event.TotalCents).
			Str("status", event.Status).
			Msg("booking event")
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("consumer stopped")
	}
}
