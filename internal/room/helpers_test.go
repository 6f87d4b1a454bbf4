package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// recordingChannel captures every frame it is sent.
type recordingChannel struct {
	mu     sync.Mutex
	frames [][]byte
}

func (c *recordingChannel) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, frame)
	return nil
}

func (c *recordingChannel) events(t *testing.T) []Event {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	events := make([]Event, 0, len(c.frames))
	for _, f := range c.frames {
		var e Event
		if err := json.Unmarshal(f, &e); err != nil {
			t.Fatalf("decoding frame %s: %v", f, err)
		}
		events = append(events, e)
	}
	return events
}

func (c *recordingChannel) types(t *testing.T) []EventType {
	t.Helper()
	var types []EventType
	for _, e := range c.events(t) {
		types = append(types, e.Type)
	}
	return types
}

var errBroken = errors.New("broken pipe")

// brokenChannel fails every send.
type brokenChannel struct {
	sends int
}

func (c *brokenChannel) Send([]byte) error {
	c.sends++
	return errBroken
}

type recordingSink struct {
	rooms []string
}

func (s *recordingSink) Publish(roomId string, _ []byte) error {
	s.rooms = append(s.rooms, roomId)
	return nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func sequentialIds() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("conn-%d", n)
	}
}

func newTestManager(opts ...ManagerOpt) *Manager {
	opts = append([]ManagerOpt{WithConnIdGenerator(sequentialIds())}, opts...)
	return NewManager(NewStore(), opts...)
}

func mustSubscribe(t *testing.T, m *Manager, roomId, name string) (*Subscription, *recordingChannel) {
	t.Helper()
	ch := &recordingChannel{}
	sub, err := m.Subscribe(context.Background(), roomId, name, ch)
	if err != nil {
		t.Fatalf("subscribing %q: %v", name, err)
	}
	return sub, ch
}

func mustSubmit(t *testing.T, m *Manager, roomId string, a Action) *Event {
	t.Helper()
	e, err := m.Submit(context.Background(), roomId, a)
	if err != nil {
		t.Fatalf("submitting %s: %v", a.Type, err)
	}
	return e
}

func addBlock(id string, x, y, z int) Action {
	return Action{Type: ActionAdd, Block: &Block{Id: id, X: x, Y: y, Z: z}}
}

func blockIds(blocks []Block) map[string]bool {
	ids := map[string]bool{}
	for _, b := range blocks {
		ids[b.Id] = true
	}
	return ids
}

func playerNames(players []Player) []string {
	var names []string
	for _, p := range players {
		names = append(names, p.Name)
	}
	return names
}
