package room

import (
	"sync"
)

// Channel is one subscriber's outbound delivery endpoint. Send must not
// block; a non-nil error marks the channel broken and it is detached.
type Channel interface {
	Send(frame []byte) error
}

type subscribers map[Channel]struct{}

func (s subscribers) attach(ch Channel) {
	s[ch] = struct{}{}
}

// detach reports whether ch was attached.
func (s subscribers) detach(ch Channel) bool {
	if _, ok := s[ch]; !ok {
		return false
	}
	delete(s, ch)
	return true
}

func (s subscribers) snapshot() []Channel {
	chs := make([]Channel, 0, len(s))
	for ch := range s {
		chs = append(chs, ch)
	}
	return chs
}

// QueueChannel is a bounded in-memory Channel drained by the goroutine that
// owns the network connection. A full queue closes the channel: the peer is
// too slow to keep up and will resync from a fresh init on reconnect.
type QueueChannel struct {
	mu     sync.Mutex
	frames chan []byte
	done   chan struct{}
	closed bool
}

func NewQueueChannel(size int) *QueueChannel {
	if size < 1 {
		size = 1
	}
	return &QueueChannel{
		frames: make(chan []byte, size),
		done:   make(chan struct{}),
	}
}

func (c *QueueChannel) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrChannelClosed
	}

	select {
	case c.frames <- frame:
		return nil
	default:
		c.closeLocked()
		return ErrChannelFull
	}
}

// Frames yields queued frames in send order.
func (c *QueueChannel) Frames() <-chan []byte {
	return c.frames
}

// Done is closed once the channel is closed.
func (c *QueueChannel) Done() <-chan struct{} {
	return c.done
}

// Close is safe to call multiple times.
func (c *QueueChannel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *QueueChannel) closeLocked() {
	if !c.closed {
		c.closed = true
		close(c.done)
	}
}
