package messaging

import (
	"strings"
)

const DefaultSubjectPrefix = "voxsync.rooms"

// Publisher sends raw data to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// EventMirror republishes room event frames on "<prefix>.<room>" so local
// tooling can watch rooms without holding a stream open.
type EventMirror struct {
	pub    Publisher
	prefix string
}

func NewEventMirror(pub Publisher, prefix string) *EventMirror {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &EventMirror{pub: pub, prefix: prefix}
}

// Publish satisfies room.EventSink.
func (m *EventMirror) Publish(roomId string, frame []byte) error {
	return m.pub.Publish(m.Subject(roomId), frame)
}

// Subject returns the subject a room's events are mirrored on.
func (m *EventMirror) Subject(roomId string) string {
	return m.prefix + "." + subjectToken(roomId)
}

// subjectToken maps a room id onto a single NATS subject token.
func subjectToken(id string) string {
	if id == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '.' || r == '*' || r == '>':
			return '_'
		case r <= ' ' || r == 0x7f:
			return '_'
		}
		return r
	}, id)
}
