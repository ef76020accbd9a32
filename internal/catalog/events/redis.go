package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"erpBack/internal/catalog"
)

// DefaultChannel is the pub/sub channel used when none is configured.
const DefaultChannel = "catalog:categories"

// RedisBus fans category events out to every server instance through Redis
// pub/sub. Events published by this instance come back through the
// subscription like any other.
type RedisBus struct {
	rdb     *redis.Client
	channel string
	logger  Logger
	local   *Local
}

// NewRedisBus creates a bus on channel.
func NewRedisBus(rdb *redis.Client, channel string, logger Logger) *RedisBus {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisBus{rdb: rdb, channel: channel, logger: logger, local: NewLocal()}
}

// Subscribe registers h for events received from Redis.
func (b *RedisBus) Subscribe(h catalog.Handler) {
	b.local.Subscribe(h)
}

// Publish sends ev to every subscribed instance.
func (b *RedisBus) Publish(ctx context.Context, ev catalog.Event) error {
	payload, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", b.channel, err)
	}
	return nil
}

// Run listens on the channel until ctx is done.
func (b *RedisBus) Run(ctx context.Context) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	if b.logger != nil {
		b.logger.Infof("listening for category events on %s", b.channel)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			ev, err := decodeEvent(msg.Payload)
			if err != nil {
				if b.logger != nil {
					b.logger.Errorf("drop category event: %v", err)
				}
				continue
			}
			_ = b.local.Publish(ctx, ev)
		}
	}
}

func encodeEvent(ev catalog.Event) (string, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeEvent(payload string) (catalog.Event, error) {
	var ev catalog.Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return catalog.Event{}, fmt.Errorf("decode event: %w", err)
	}
	if ev.Type == "" {
		return catalog.Event{}, fmt.Errorf("decode event: missing type")
	}
	return ev, nil
}
