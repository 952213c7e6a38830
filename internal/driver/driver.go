package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-errors"
)

const (
	DefaultTickLength  = time.Second * 10
	DefaultMaxFailures = 3
)

// Manager is anything that does periodic work on the game clock.
type Manager interface {
	Tick(context.Context) error
}

// GameDriver ticks its managers at a fixed interval until the context ends.
// A failing tick is logged and retried on the next one; the driver gives up
// only after maxFailures failing ticks in a row. When the context ends the
// managers get one last tick so pending work is flushed.
type GameDriver struct {
	tickLength  time.Duration
	maxFailures int
	managers    []Manager
}

func NewGameDriver(managers []Manager, opts ...GameDriverOpt) *GameDriver {
	d := &GameDriver{
		tickLength:  DefaultTickLength,
		maxFailures: DefaultMaxFailures,
		managers:    managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *GameDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "game driver started", "tick", d.tickLength, "managers", len(d.managers))

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return d.flush(ctx)
		case <-ticker.C:
			err := d.Tick(ctx)
			if err == nil {
				failures = 0
				continue
			}

			failures++
			slog.WarnContext(ctx, "tick failed", "failures", failures, "error", err)
			if failures >= d.maxFailures {
				return fmt.Errorf("%d ticks failed in a row: %w", failures, err)
			}
		}
	}
}

// flush runs the final tick after ctx is done.
func (d *GameDriver) flush(ctx context.Context) error {
	if err := d.Tick(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("final tick: %w", err)
	}
	return nil
}

// Tick runs one tick of every manager. A failing manager does not stop the
// ones after it; all failures are returned together.
func (d *GameDriver) Tick(ctx context.Context) error {
	el := errors.NewErrorList()
	for _, m := range d.managers {
		el.Add(m.Tick(ctx))
	}
	return el.Err()
}
