package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	Http    HttpConfig    `json:"http"`
	Rooms   RoomsConfig   `json:"rooms"`
	Catalog CatalogConfig `json:"catalog"`
	Nats    *NatsConfig   `json:"nats,omitempty"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.Http.validate())
	el.Add(c.Rooms.validate())
	el.Add(c.Catalog.validate())
	if c.Nats != nil {
		el.Add(c.Nats.validate())
	}

	return el.Err()
}

// parseDuration parses an optional duration field, returning def when s is
// empty.
func parseDuration(field, s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", field)
	}
	return d, nil
}
