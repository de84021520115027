package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/nived-gurung/trekbooking/config"
)

// EventHandler processes one decoded booking event. A handler error
// stops the consume loop.
type EventHandler func(ctx context.Context, event BookingEvent) error

type Consumer struct {
	reader *kafka.Reader
	log    zerolog.Logger
}

func NewConsumer(cfg config.KafkaConfig, log zerolog.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        cfg.Brokers,
			GroupID:        cfg.GroupID,
			Topic:          cfg.BookingEventsTopic,
			CommitInterval: time.Second,
		}),
		log: log,
	}
}

// Consume reads booking events until the context is canceled. Payloads
// that fail to decode are logged and skipped so one poison message
// cannot wedge the group.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeBookingEvent(msg.Value)
		if err != nil {
			c.log.Error().Err(err).Int64("offset", msg.Offset).Msg("skipping malformed booking event")
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func decodeBookingEvent(data []byte) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("decode booking event: %w", err)
	}
	if event.Reference == "" {
		return BookingEvent{}, fmt.Errorf("booking event has no reference")
	}
	return event, nil
}
