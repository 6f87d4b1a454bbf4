package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-voxsync/internal/catalog"
	"github.com/pixil98/go-voxsync/internal/listener"
)

const defaultAddress = ":8080"

type HttpConfig struct {
	Address           string `json:"address"`
	MaxBodyBytes      int64  `json:"max_body_bytes"`
	KeepAliveInterval string `json:"keepalive_interval"`
	CompressCatalog   *bool  `json:"compress_catalog,omitempty"`
}

func (c *HttpConfig) validate() error {
	el := errors.NewErrorList()

	if c.MaxBodyBytes < 0 {
		el.Add(fmt.Errorf("max_body_bytes must not be negative"))
	}
	_, err := parseDuration("keepalive_interval", c.KeepAliveInterval, listener.DefaultKeepAliveInterval)
	el.Add(err)

	return el.Err()
}

func (c *HttpConfig) address() string {
	if c.Address == "" {
		return defaultAddress
	}
	return c.Address
}

func (c *HttpConfig) handlerOpts() ([]listener.HandlerOpt, error) {
	var opts []listener.HandlerOpt

	if c.MaxBodyBytes > 0 {
		opts = append(opts, listener.WithMaxBodyBytes(c.MaxBodyBytes))
	}

	keepAlive, err := parseDuration("keepalive_interval", c.KeepAliveInterval, listener.DefaultKeepAliveInterval)
	if err != nil {
		return nil, err
	}
	opts = append(opts, listener.WithKeepAlive(keepAlive))

	if c.CompressCatalog != nil {
		opts = append(opts, listener.WithCompression(*c.CompressCatalog))
	}

	return opts, nil
}

func (c *HttpConfig) buildListener(rooms listener.RoomService, cat *catalog.Catalog, extra ...listener.HandlerOpt) (*listener.HttpListener, error) {
	opts, err := c.handlerOpts()
	if err != nil {
		return nil, err
	}
	opts = append(opts, extra...)

	return listener.NewHttpListener(c.address(), listener.NewHandler(rooms, cat, opts...)), nil
}
