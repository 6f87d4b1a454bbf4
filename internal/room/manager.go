package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const DefaultIdleTimeout = 10 * time.Minute

// Manager is the entry point shared by the stream and submission endpoints.
// It resolves rooms through the Store and retries operations that land on a
// room evicted concurrently by the sweep.
type Manager struct {
	store       *Store
	types       BlockTypes
	idleTimeout time.Duration
	newConnId   func() string
}

type ManagerOpt func(*Manager)

// WithBlockTypes validates added blocks against a static catalog.
func WithBlockTypes(types BlockTypes) ManagerOpt {
	return func(m *Manager) {
		m.types = types
	}
}

// WithIdleTimeout sets how long an empty room is retained. Zero disables
// eviction.
func WithIdleTimeout(d time.Duration) ManagerOpt {
	return func(m *Manager) {
		m.idleTimeout = d
	}
}

func WithConnIdGenerator(f func() string) ManagerOpt {
	return func(m *Manager) {
		m.newConnId = f
	}
}

func NewManager(store *Store, opts ...ManagerOpt) *Manager {
	m := &Manager{
		store:       store,
		idleTimeout: DefaultIdleTimeout,
		newConnId:   uuid.NewString,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Decode parses a submitted action body against the manager's catalog.
func (m *Manager) Decode(data []byte) (Action, error) {
	return DecodeAction(data, m.types)
}

// Submit applies a to the room, creating it if needed.
func (m *Manager) Submit(ctx context.Context, roomId string, a Action) (*Event, error) {
	for {
		e, err := m.store.GetOrCreate(roomId).Apply(ctx, a)
		if errors.Is(err, errRoomEvicted) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("applying %s to room %s: %w", a.Type, roomId, err)
		}
		return e, nil
	}
}

// Snapshot returns the current init event for the room.
func (m *Manager) Snapshot(roomId string) Event {
	return m.store.GetOrCreate(roomId).Snapshot()
}

// Rooms returns the number of live rooms.
func (m *Manager) Rooms() int {
	return m.store.Len()
}

// Subscribe attaches ch to the room, registering a player for name when it
// is non-empty and not already present. The init snapshot is sent to ch
// before it is attached. The caller must Close the returned subscription
// when the connection ends.
func (m *Manager) Subscribe(ctx context.Context, roomId, name string, ch Channel) (*Subscription, error) {
	sub := m.newSubscription(ch)
	if err := sub.open(ctx, m.store, roomId, NormalizeName(name)); err != nil {
		sub.Close(ctx)
		return nil, err
	}

	slog.InfoContext(ctx, "subscribed", "room", roomId, "conn", sub.ConnId, "player", sub.player)
	return sub, nil
}

// newSubscription returns a connecting subscription for ch that is not yet
// attached to any room.
func (m *Manager) newSubscription(ch Channel) *Subscription {
	return &Subscription{
		ConnId: m.newConnId(),
		ch:     ch,
	}
}

// Tick evicts idle rooms.
func (m *Manager) Tick(ctx context.Context) error {
	if m.idleTimeout <= 0 {
		return nil
	}
	for _, id := range m.store.Sweep(m.idleTimeout) {
		slog.InfoContext(ctx, "evicted idle room", "room", id)
	}
	return nil
}

// ConnState is the lifecycle state of one stream connection.
type ConnState int32

const (
	StateConnecting ConnState = iota
	StateSubscribed
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateSubscribed:
		return "subscribed"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("ConnState(%d)", int32(s))
}

// Subscription is one stream connection. Its zero state is StateConnecting;
// broadcasts reach it only while it is StateSubscribed.
type Subscription struct {
	ConnId string

	room   *Room
	ch     Channel
	player string // name registered by this connection, if any

	state atomic.Int32
	once  sync.Once
}

// Player returns the name registered by this connection, or "".
func (s *Subscription) Player() string {
	return s.player
}

func (s *Subscription) State() ConnState {
	return ConnState(s.state.Load())
}

// open attaches the subscription to roomId, retrying when the room is evicted
// underneath it.
func (s *Subscription) open(ctx context.Context, store *Store, roomId, name string) error {
	for {
		r := store.GetOrCreate(roomId)
		registered, err := r.subscribe(ctx, s.ConnId, name, s.ch)
		if errors.Is(err, errRoomEvicted) {
			continue
		}
		if err != nil {
			return fmt.Errorf("subscribing to room %s: %w", roomId, err)
		}

		s.room = r
		if registered {
			s.player = name
		}
		s.state.Store(int32(StateSubscribed))
		return nil
	}
}

// Close detaches the channel and removes the connection's player. Only the
// first call has any effect. Closing a subscription that never opened only
// marks it closed.
func (s *Subscription) Close(ctx context.Context) {
	s.once.Do(func() {
		s.state.Store(int32(StateClosed))
		if s.room == nil {
			return
		}
		s.room.unsubscribe(ctx, s.ConnId, s.player, s.ch)
		slog.InfoContext(ctx, "unsubscribed", "room", s.room.Id(), "conn", s.ConnId, "player", s.player)
	})
}
