package room

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// EventSink receives a copy of every frame broadcast in any room.
type EventSink interface {
	Publish(roomId string, frame []byte) error
}

// Room is an isolated namespace of shared block and player state. Every
// read-modify-write of its state, and the broadcast that follows it, runs
// under mu so subscribers observe events in mutation order.
type Room struct {
	id string

	mu         sync.Mutex
	blocks     []Block
	players    map[string]*Player
	subs       subscribers
	lastActive time.Time
	evicted    bool

	sink EventSink
	now  func() time.Time
}

func newRoom(id string, sink EventSink, now func() time.Time) *Room {
	return &Room{
		id:         id,
		players:    map[string]*Player{},
		subs:       subscribers{},
		lastActive: now(),
		sink:       sink,
		now:        now,
	}
}

func (r *Room) Id() string {
	return r.id
}

// Snapshot returns the init event describing the room's current state.
func (r *Room) Snapshot() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Attach adds ch to the subscriber set. It does not send a snapshot.
func (r *Room) Attach(ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs.attach(ch)
	r.lastActive = r.now()
}

// Detach removes ch from the subscriber set. Detaching an unknown channel is
// a no-op.
func (r *Room) Detach(ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.subs.detach(ch) {
		r.lastActive = r.now()
	}
}

// Broadcast delivers e to every attached channel. Channels that fail are
// detached; the others still receive the event.
func (r *Room) Broadcast(ctx context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcastLocked(ctx, e)
}

// Subscribers returns the number of attached channels.
func (r *Room) Subscribers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

func (r *Room) broadcastLocked(ctx context.Context, e Event) {
	frame, err := e.encode()
	if err != nil {
		slog.ErrorContext(ctx, "dropping event", "room", r.id, "error", err)
		return
	}

	for _, ch := range r.subs.snapshot() {
		if err := ch.Send(frame); err != nil {
			r.subs.detach(ch)
			slog.DebugContext(ctx, "detached broken channel", "room", r.id, "event", e.Type, "error", err)
		}
	}

	if r.sink != nil {
		if err := r.sink.Publish(r.id, frame); err != nil {
			slog.DebugContext(ctx, "mirroring event", "room", r.id, "event", e.Type, "error", err)
		}
	}
}

func (r *Room) snapshotLocked() Event {
	blocks := slices.Clone(r.blocks)

	players := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, *p)
	}
	slices.SortFunc(players, func(a, b Player) int {
		return strings.Compare(a.Name, b.Name)
	})

	return initEvent(blocks, players)
}

// subscribe registers the connection's player if needed, sends the init
// snapshot to ch alone, then attaches ch. It reports whether a player was
// registered for connId.
func (r *Room) subscribe(ctx context.Context, connId, name string, ch Channel) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.evicted {
		return false, errRoomEvicted
	}
	r.lastActive = r.now()

	registered := false
	if name != "" {
		if _, ok := r.players[name]; !ok {
			r.players[name] = &Player{Name: name, owner: connId}
			registered = true
			r.broadcastLocked(ctx, playerJoinedEvent(name, len(r.players)))
		}
	}

	frame, err := r.snapshotLocked().encode()
	if err != nil {
		if registered {
			delete(r.players, name)
		}
		return false, err
	}
	if err := ch.Send(frame); err != nil {
		// Attach anyway, the connection's cleanup will detach it.
		slog.DebugContext(ctx, "sending init", "room", r.id, "conn", connId, "error", err)
	}

	r.subs.attach(ch)
	return registered, nil
}

// unsubscribe detaches ch and removes the player owned by connId, if any.
func (r *Room) unsubscribe(ctx context.Context, connId, name string, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs.detach(ch)
	r.lastActive = r.now()

	if name == "" {
		return
	}
	p, ok := r.players[name]
	if !ok || p.owner != connId {
		return
	}
	delete(r.players, name)
	r.broadcastLocked(ctx, playerLeftEvent(name, len(r.players)))
}

// evictIfIdle marks the room evicted when nobody is attached or present and
// it has seen no activity since cutoff.
func (r *Room) evictIfIdle(cutoff time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.subs) > 0 || len(r.players) > 0 || r.lastActive.After(cutoff) {
		return false
	}
	r.evicted = true
	return true
}
