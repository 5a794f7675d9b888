package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// Handler processes one delivered message. A returned error stops the
// consume loop; failures the worker can live with should be swallowed
// inside the handler.
type Handler func(ctx context.Context, msg kafka.Message) error

type ConsumerConfig struct {
	Brokers []string
	GroupID string
	Topic   string
	// Zero values fall back to a 3s heartbeat and 30s session.
	Heartbeat time.Duration
	Session   time.Duration
}

// Consumer reads ticket events for the notification worker as part of a
// consumer group, so multiple workers share the topic partitions.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(cfg ConsumerConfig) *Consumer {
	if cfg.Heartbeat <= 0 {
		cfg.Heartbeat = 3 * time.Second
	}
	if cfg.Session <= 0 {
		cfg.Session = 30 * time.Second
	}
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           cfg.Brokers,
			GroupID:           cfg.GroupID,
			Topic:             cfg.Topic,
			HeartbeatInterval: cfg.Heartbeat,
			SessionTimeout:    cfg.Session,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume blocks until the context is canceled, the broker connection
// fails, or the handler reports an error.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
}
