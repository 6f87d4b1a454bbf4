package driver

import (
	"context"
	"log/slog"
	"time"

	"github.com/pixil98/go-errors"
)

const DefaultInterval = time.Minute

// Sweeper is periodic housekeeping. room.Manager is the main one: each Tick
// evicts rooms that have sat empty past the idle timeout.
type Sweeper interface {
	Tick(context.Context) error
}

// Driver ticks its sweepers on a fixed interval until the context ends.
type Driver struct {
	interval time.Duration
	sweepers []Sweeper
}

func NewDriver(sweepers []Sweeper, opts ...DriverOpt) *Driver {
	d := &Driver{
		interval: DefaultInterval,
		sweepers: sweepers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start runs until ctx is canceled. A failed sweep stops the worker so the
// service shuts down instead of running with stale rooms.
func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "sweep driver started", "interval", d.interval, "sweepers", len(d.sweepers))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := d.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

// Tick runs every sweeper once. One sweeper failing does not skip the rest.
func (d *Driver) Tick(ctx context.Context) error {
	start := time.Now()
	el := errors.NewErrorList()

	for _, s := range d.sweepers {
		el.Add(s.Tick(ctx))
	}

	slog.DebugContext(ctx, "sweep finished", "took", time.Since(start))
	return el.Err()
}
