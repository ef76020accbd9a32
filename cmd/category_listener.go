package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"erpBack/internal/catalog"
	"erpBack/internal/catalog/events"
)

const (
	listenerRetryMin = 1 * time.Second
	listenerRetryMax = 30 * time.Second
	resyncTimeout    = 10 * time.Second
)

// startCategoryListener keeps the Redis subscription alive until ctx is done.
// Events published while the subscription was down are lost, so every
// reconnect resynchronizes the registry.
func startCategoryListener(ctx context.Context, bus *events.RedisBus, registry *catalog.Registry, logger zerolog.Logger) {
	go func() {
		wait := listenerRetryMin
		for {
			started := time.Now()
			err := bus.Run(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Dur("retry_in", wait).Msg("category listener stopped")
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}

			if time.Since(started) > listenerRetryMax {
				wait = listenerRetryMin
			} else if wait *= 2; wait > listenerRetryMax {
				wait = listenerRetryMax
			}

			resyncCtx, cancel := context.WithTimeout(ctx, resyncTimeout)
			if err := registry.Refresh(resyncCtx); err != nil {
				logger.Error().Err(err).Msg("category resync failed")
			}
			cancel()
		}
	}()
}
