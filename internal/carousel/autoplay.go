package carousel

import (
	"context"
	"log/slog"
	"time"
)

// DefaultAutoplayInterval is the pause between automatic slide advances.
const DefaultAutoplayInterval = 4 * time.Second

// Autoplay drives an engine on a recurring ticker. Advance is called with
// the new state after each tick that moved the carousel, so owners can
// broadcast slide changes. The tick callback runs on Autoplay's goroutine
// with the loop's context; the owner is responsible for serializing engine
// access inside tick.
type Autoplay struct {
	interval time.Duration
	tick     func(context.Context) (State, bool)
	advance  func(State)
	logger   *slog.Logger
}

// NewAutoplay creates an autoplay runner. tick must apply a TimerTick to the
// owner's engine under its own locking and report the resulting state and
// whether the index moved. advance may be nil.
func NewAutoplay(interval time.Duration, tick func(context.Context) (State, bool), advance func(State), logger *slog.Logger) *Autoplay {
	if interval <= 0 {
		interval = DefaultAutoplayInterval
	}
	return &Autoplay{
		interval: interval,
		tick:     tick,
		advance:  advance,
		logger:   logger,
	}
}

// Start runs the ticker loop until ctx is cancelled.
// This should be called once in a goroutine.
func (a *Autoplay) Start(ctx context.Context) {
	a.logger.Debug("carousel autoplay starting",
		slog.Duration("interval", a.interval))

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			state, moved := a.tick(ctx)
			if moved && a.advance != nil {
				a.advance(state)
			}

		case <-ctx.Done():
			a.logger.Debug("carousel autoplay stopping")
			return
		}
	}
}
