package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event is a fetch-trigger event read from the stream.
type Event struct {
	MessageID string
	EventID   string
	EventType string
	Source    string
	CreatedAt time.Time
	Payload   json.RawMessage
}

// EventHandler processes a single stream event. A returned error leaves the
// message unacknowledged so the group redelivers it.
type EventHandler interface {
	HandleEvent(ctx context.Context, event Event) error
}

// Consumer reads fetch-trigger events from a Redis Stream consumer group and
// dispatches them to an EventHandler.
type Consumer struct {
	client  *redis.Client
	cfg     Config
	handler EventHandler
	logger  *slog.Logger
	done    chan struct{}
}

// NewConsumer builds a stream consumer. A disabled config yields an inert
// consumer whose Start and Stop are no-ops.
func NewConsumer(cfg Config, handler EventHandler, logger *slog.Logger) (*Consumer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Enabled {
		return &Consumer{cfg: cfg, logger: logger}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return &Consumer{
		client:  redis.NewClient(opts),
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		done:    make(chan struct{}),
	}, nil
}

// Start creates the consumer group if needed and launches the read loop.
func (c *Consumer) Start(ctx context.Context) error {
	if !c.cfg.Enabled {
		c.logger.Info("stream consumer disabled")
		return nil
	}

	if err := c.createGroup(ctx); err != nil {
		return fmt.Errorf("create consumer group: %w", err)
	}

	c.logger.Info("stream consumer started",
		"stream", c.cfg.StreamKey,
		"group", c.cfg.GroupName,
		"consumer", c.cfg.ConsumerName,
	)

	go c.run(ctx)
	return nil
}

// Stop terminates the read loop and closes the Redis connection.
func (c *Consumer) Stop() {
	if c.done != nil {
		close(c.done)
	}
	if c.client != nil {
		c.client.Close()
	}
}

// IsEnabled reports whether this consumer was configured to run.
func (c *Consumer) IsEnabled() bool {
	return c.cfg.Enabled
}

func (c *Consumer) createGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.StreamKey, c.cfg.GroupName, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("stream consumer stopping", "reason", "context cancelled")
			return
		case <-c.done:
			c.logger.Info("stream consumer stopping", "reason", "shutdown")
			return
		default:
		}

		if err := c.poll(ctx); err != nil {
			c.logger.Error("stream read failed", "error", err)
			time.Sleep(time.Second)
		}
	}
}

// poll blocks for up to the configured timeout waiting for new messages,
// dispatches each to the handler, and ACKs only the ones handled cleanly.
func (c *Consumer) poll(ctx context.Context) error {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.GroupName,
		Consumer: c.cfg.ConsumerName,
		Streams:  []string{c.cfg.StreamKey, ">"},
		Count:    c.cfg.BatchSize,
		Block:    c.cfg.BlockTimeout,
	}).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	for _, stream := range streams {
		for _, msg := range stream.Messages {
			event := decodeEvent(msg)

			if err := c.handler.HandleEvent(ctx, event); err != nil {
				c.logger.Error("event handling failed, leaving unacknowledged",
					"message_id", msg.ID,
					"event_type", event.EventType,
					"error", err,
				)
				continue
			}

			if err := c.client.XAck(ctx, c.cfg.StreamKey, c.cfg.GroupName, msg.ID).Err(); err != nil {
				c.logger.Error("ack failed", "message_id", msg.ID, "error", err)
			}
		}
	}

	return nil
}

func decodeEvent(msg redis.XMessage) Event {
	event := Event{MessageID: msg.ID}

	field := func(key string) string {
		s, _ := msg.Values[key].(string)
		return s
	}

	event.EventID = field("event_id")
	event.EventType = field("event_type")
	event.Source = field("source")
	if v := field("created_at"); v != "" {
		event.CreatedAt, _ = time.Parse(time.RFC3339, v)
	}
	if v := field("payload"); v != "" {
		event.Payload = json.RawMessage(v)
	}

	return event
}
