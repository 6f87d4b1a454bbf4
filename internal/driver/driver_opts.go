package driver

import "time"

type DriverOpt func(*Driver)

// WithInterval sets the time between sweeps. Non-positive values keep the
// default.
func WithInterval(interval time.Duration) DriverOpt {
	return func(d *Driver) {
		if interval > 0 {
			d.interval = interval
		}
	}
}
