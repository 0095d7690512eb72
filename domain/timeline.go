package domain

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

type EntryKind int

const (
	EntryText EntryKind = iota
	EntryImage
	EntryPresence
)

func (k EntryKind) String() string {
	switch k {
	case EntryText:
		return "text"
	case EntryImage:
		return "image"
	case EntryPresence:
		return "presence"
	default:
		return "unknown"
	}
}

type PresenceKind int

const (
	PresenceJoined PresenceKind = iota
	PresenceLeft
)

// TimelineEntry is one immutable line of the room timeline. Sender is
// empty for presence notices; Content holds the message text, the
// image data URI, or the synthesized presence text.
type TimelineEntry struct {
	ID        string
	Kind      EntryKind
	Sender    string
	Content   string
	Presence  PresenceKind
	Timestamp string
}

// Timeline is the append-only ordered log of a session. Entries are
// never reordered or removed; display order equals append order. IDs
// are monotonic ULIDs so later entries always sort after earlier ones.
//
// A Timeline has a single owner (the session event loop) and is not
// safe for concurrent mutation.
type Timeline struct {
	entries []TimelineEntry
	entropy *ulid.MonotonicEntropy
}

func NewTimeline() *Timeline {
	return &Timeline{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (t *Timeline) AppendText(sender, content, timestamp string) TimelineEntry {
	return t.append(TimelineEntry{
		Kind:      EntryText,
		Sender:    sender,
		Content:   content,
		Timestamp: timestamp,
	})
}

func (t *Timeline) AppendImage(sender, content, timestamp string) TimelineEntry {
	return t.append(TimelineEntry{
		Kind:      EntryImage,
		Sender:    sender,
		Content:   content,
		Timestamp: timestamp,
	})
}

// AppendPresence synthesizes the notice text from the username; the
// server's own wording is not used.
func (t *Timeline) AppendPresence(username string, kind PresenceKind, timestamp string) TimelineEntry {
	content := username + " joined the room"
	if kind == PresenceLeft {
		content = username + " left the room"
	}
	return t.append(TimelineEntry{
		Kind:      EntryPresence,
		Content:   content,
		Presence:  kind,
		Timestamp: timestamp,
	})
}

func (t *Timeline) append(e TimelineEntry) TimelineEntry {
	e.ID = ulid.MustNew(ulid.Timestamp(time.Now()), t.entropy).String()
	t.entries = append(t.entries, e)
	return e
}

// Entries returns a copy of the log in display order.
func (t *Timeline) Entries() []TimelineEntry {
	out := make([]TimelineEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Timeline) Len() int {
	return len(t.entries)
}
