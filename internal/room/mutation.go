package room

import (
	"context"
	"fmt"
	"slices"
)

// Apply performs a on the room and broadcasts the resulting event. It
// returns nil without broadcasting for a position update from a sender that
// has no registered player.
func (r *Room) Apply(ctx context.Context, a Action) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.evicted {
		return nil, errRoomEvicted
	}

	var e Event
	switch a.Type {
	case ActionAdd:
		if a.Block == nil {
			return nil, malformed("block is required")
		}
		r.putBlockLocked(*a.Block)
		e = addEvent(*a.Block, a.Sender)

	case ActionRemove:
		r.blocks = slices.DeleteFunc(r.blocks, func(b Block) bool {
			return b.Id == a.BlockId
		})
		e = removeEvent(a.BlockId, a.Sender)

	case ActionClear:
		r.blocks = nil
		e = clearEvent()

	case ActionUpdatePosition:
		if a.Position == nil {
			return nil, malformed("position is required")
		}
		p, ok := r.players[a.Sender]
		if !ok {
			// Likely racing the sender's join.
			return nil, nil
		}
		p.Position = *a.Position
		e = playerMovedEvent(p.Name, p.Position)

	default:
		return nil, invalidAction(fmt.Sprintf("unrecognized action %q", a.Type))
	}

	r.lastActive = r.now()
	r.broadcastLocked(ctx, e)
	return &e, nil
}

// putBlockLocked appends b, replacing in place any block with the same id.
func (r *Room) putBlockLocked(b Block) {
	i := slices.IndexFunc(r.blocks, func(existing Block) bool {
		return existing.Id == b.Id
	})
	if i >= 0 {
		r.blocks[i] = b
		return
	}
	r.blocks = append(r.blocks, b)
}
