package messaging

import "time"

type NatsServerOpt func(*NatsServer)

// WithStartTimeout bounds how long Start waits for the embedded server to
// accept the mirror's connection.
func WithStartTimeout(d time.Duration) NatsServerOpt {
	return func(n *NatsServer) {
		n.startupTimeout = d
	}
}

// WithHost sets the interface external subscribers connect to. Defaults to
// loopback so room events are not exposed unless configured.
func WithHost(host string) NatsServerOpt {
	return func(n *NatsServer) {
		n.host = host
	}
}

// WithPort sets the client port. -1 picks a random free port.
func WithPort(port int) NatsServerOpt {
	return func(n *NatsServer) {
		n.port = port
	}
}

// WithClientName names the publishing connection.
func WithClientName(name string) NatsServerOpt {
	return func(n *NatsServer) {
		n.clientName = name
	}
}
