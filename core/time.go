package core

import (
	"context"
	"time"
)

// NewPacer creates a pacer ticking at the configured poll rate
func NewPacer(cfg TimeConfiguration) *Pacer {
	interval := cfg.PollInterval()
	return &Pacer{
		interval: interval,
		ticker:   time.NewTicker(interval),
	}
}

// Pacer spaces out iterations of the event loop
type Pacer struct {
	interval time.Duration
	ticker   *time.Ticker
}

// Interval gets the time between two ticks
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Wait blocks until the next tick. It returns false once ctx is done.
func (p *Pacer) Wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-p.ticker.C:
		return true
	}
}

// Stop releases the underlying ticker
func (p *Pacer) Stop() {
	p.ticker.Stop()
}
