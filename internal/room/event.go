package room

import (
	"encoding/json"
	"fmt"
)

// EventType discriminates the frames sent to subscribers.
type EventType string

const (
	EventInit         EventType = "init"
	EventAdd          EventType = "add"
	EventRemove       EventType = "remove"
	EventClear        EventType = "clear"
	EventPlayerJoined EventType = "player_joined"
	EventPlayerLeft   EventType = "player_left"
	EventPlayerMoved  EventType = "player_moved"
)

// Event is a server-emitted notification of a state change. Only the fields
// belonging to Type are populated.
type Event struct {
	Type EventType `json:"type"`

	// init
	Blocks  []Block  `json:"blocks,omitempty"`
	Players []Player `json:"players,omitempty"`

	// add, remove
	Block   *Block `json:"block,omitempty"`
	BlockId string `json:"blockId,omitempty"`
	Sender  string `json:"sender,omitempty"`

	// player_joined, player_left, player_moved
	Name     string    `json:"name,omitempty"`
	Count    *int      `json:"count,omitempty"`
	Position *Position `json:"position,omitempty"`
}

// MarshalJSON keeps blocks and players present as empty arrays on init
// frames, and sender present on add and remove frames, so clients never see
// a missing key.
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event

	switch e.Type {
	case EventInit:
		blocks := e.Blocks
		if blocks == nil {
			blocks = []Block{}
		}
		players := e.Players
		if players == nil {
			players = []Player{}
		}
		return json.Marshal(struct {
			Type    EventType `json:"type"`
			Blocks  []Block   `json:"blocks"`
			Players []Player  `json:"players"`
		}{e.Type, blocks, players})

	case EventAdd:
		return json.Marshal(struct {
			Type   EventType `json:"type"`
			Block  *Block    `json:"block"`
			Sender string    `json:"sender"`
		}{e.Type, e.Block, e.Sender})

	case EventRemove:
		return json.Marshal(struct {
			Type    EventType `json:"type"`
			BlockId string    `json:"blockId"`
			Sender  string    `json:"sender"`
		}{e.Type, e.BlockId, e.Sender})
	}

	return json.Marshal(plain(e))
}

func (e Event) encode() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding %s event: %w", e.Type, err)
	}
	return b, nil
}

func initEvent(blocks []Block, players []Player) Event {
	return Event{Type: EventInit, Blocks: blocks, Players: players}
}

func addEvent(b Block, sender string) Event {
	return Event{Type: EventAdd, Block: &b, Sender: sender}
}

func removeEvent(blockId, sender string) Event {
	return Event{Type: EventRemove, BlockId: blockId, Sender: sender}
}

func clearEvent() Event {
	return Event{Type: EventClear}
}

func playerJoinedEvent(name string, count int) Event {
	return Event{Type: EventPlayerJoined, Name: name, Count: &count}
}

func playerLeftEvent(name string, count int) Event {
	return Event{Type: EventPlayerLeft, Name: name, Count: &count}
}

func playerMovedEvent(name string, pos Position) Event {
	return Event{Type: EventPlayerMoved, Name: name, Position: &pos}
}
