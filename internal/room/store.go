package room

import (
	"sync"
	"time"
)

// Store maps room identifiers to rooms. Rooms are created on first
// reference and only removed by Sweep.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room

	sink EventSink
	now  func() time.Time
}

type StoreOpt func(*Store)

// WithEventSink mirrors every broadcast frame to sink.
func WithEventSink(sink EventSink) StoreOpt {
	return func(s *Store) {
		s.sink = sink
	}
}

// WithClock overrides the time source used for idle tracking.
func WithClock(now func() time.Time) StoreOpt {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...StoreOpt) *Store {
	s := &Store{
		rooms: map[string]*Room{},
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetOrCreate returns the room for id, creating it if needed.
func (s *Store) GetOrCreate(id string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.rooms[id]; ok {
		return r
	}
	r := newRoom(id, s.sink, s.now)
	s.rooms[id] = r
	return r
}

// Len returns the number of live rooms.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// Sweep evicts rooms that have had no subscribers, no players and no
// activity for at least idle. It returns the evicted room ids.
func (s *Store) Sweep(idle time.Duration) []string {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []string
	for id, r := range s.rooms {
		if r.evictIfIdle(cutoff) {
			delete(s.rooms, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}
