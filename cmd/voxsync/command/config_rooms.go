package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-voxsync/internal/driver"
	"github.com/pixil98/go-voxsync/internal/listener"
	"github.com/pixil98/go-voxsync/internal/room"
)

const defaultSweepInterval = time.Minute

type RoomsConfig struct {
	IdleTimeout   string `json:"idle_timeout"`
	SweepInterval string `json:"sweep_interval"`
	ChannelBuffer int    `json:"channel_buffer"`
}

func (c *RoomsConfig) validate() error {
	el := errors.NewErrorList()

	_, err := parseDuration("idle_timeout", c.IdleTimeout, room.DefaultIdleTimeout)
	el.Add(err)

	sweep, err := parseDuration("sweep_interval", c.SweepInterval, defaultSweepInterval)
	if err != nil {
		el.Add(err)
	} else if sweep < time.Second {
		el.Add(fmt.Errorf("sweep_interval must be at least 1 second"))
	}

	if c.ChannelBuffer < 0 {
		el.Add(fmt.Errorf("channel_buffer must not be negative"))
	}

	return el.Err()
}

func (c *RoomsConfig) buildManager(store *room.Store, types room.BlockTypes) (*room.Manager, error) {
	idle, err := parseDuration("idle_timeout", c.IdleTimeout, room.DefaultIdleTimeout)
	if err != nil {
		return nil, err
	}

	opts := []room.ManagerOpt{room.WithIdleTimeout(idle)}
	if types != nil {
		opts = append(opts, room.WithBlockTypes(types))
	}

	return room.NewManager(store, opts...), nil
}

func (c *RoomsConfig) buildDriver(m *room.Manager) (*driver.Driver, error) {
	sweep, err := parseDuration("sweep_interval", c.SweepInterval, defaultSweepInterval)
	if err != nil {
		return nil, err
	}

	return driver.NewDriver([]driver.Sweeper{m}, driver.WithInterval(sweep)), nil
}

// handlerOpts carries the per-subscriber queue size to the stream endpoint.
func (c *RoomsConfig) handlerOpts() []listener.HandlerOpt {
	if c.ChannelBuffer == 0 {
		return nil
	}
	return []listener.HandlerOpt{listener.WithChannelBuffer(c.ChannelBuffer)}
}
