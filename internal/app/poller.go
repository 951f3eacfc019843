package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/nimbus/internal/core"
	"github.com/five82/nimbus/internal/state"
)

const maxBackoff = time.Hour

// Refresher is the part of the engine the poller drives.
type Refresher interface {
	Submit(msg core.Message) bool
	TryView() (state.View, bool)
}

// StartPoller submits a RefreshRequested every interval until ctx ends or the
// engine stops accepting messages. A non-positive interval disables it. While
// refreshes keep producing invalid data the delay doubles, capped at maxBackoff.
func StartPoller(ctx context.Context, engine Refresher, interval time.Duration, logger *log.Logger) {
	if interval <= 0 {
		logger.Debug("periodic refresh disabled")
		return
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if v, ok := engine.TryView(); ok {
				if v.Status == state.StatusInvalidData {
					failures++
				} else {
					failures = 0
				}
			}
			if !engine.Submit(core.RefreshRequested{}) {
				logger.Debug("engine closed, stopping poller")
				return
			}

			next := calculateBackoff(failures, interval)
			if failures > 0 {
				logger.Warn("last refresh failed, backing off", "failures", failures, "next", next)
			}
			timer.Reset(next)
		}
	}()
}

func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	delay := base
	for i := 0; i < failures; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	return delay
}
