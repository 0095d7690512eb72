package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineAppendOrder(t *testing.T) {
	tl := NewTimeline()
	tl.AppendText("alice", "hi", "t1")
	tl.AppendPresence("bob", PresenceJoined, "t2")
	tl.AppendImage("bob", "data:image/png;base64,AAAA", "t3")
	tl.AppendPresence("alice", PresenceLeft, "t4")
	tl.AppendText("bob", "bye", "t5")

	entries := tl.Entries()
	require.Len(t, entries, 5)

	wantKinds := []EntryKind{EntryText, EntryPresence, EntryImage, EntryPresence, EntryText}
	wantStamps := []string{"t1", "t2", "t3", "t4", "t5"}
	for i, e := range entries {
		assert.Equal(t, wantKinds[i], e.Kind)
		assert.Equal(t, wantStamps[i], e.Timestamp)
	}
}

func TestTimelineIDsMonotonic(t *testing.T) {
	tl := NewTimeline()
	for i := 0; i < 100; i++ {
		tl.AppendText("alice", "x", "t")
	}

	entries := tl.Entries()
	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i].ID, entries[i-1].ID,
			"entry %d must sort after entry %d", i, i-1)
	}
}

func TestTimelinePresenceText(t *testing.T) {
	tl := NewTimeline()
	joined := tl.AppendPresence("bob", PresenceJoined, "t1")
	left := tl.AppendPresence("bob", PresenceLeft, "t2")

	assert.Equal(t, "bob joined the room", joined.Content)
	assert.Equal(t, "bob left the room", left.Content)
	assert.Empty(t, joined.Sender)
	assert.Empty(t, left.Sender)
}

func TestTimelineEntriesReturnsCopy(t *testing.T) {
	tl := NewTimeline()
	tl.AppendText("alice", "hi", "t1")

	entries := tl.Entries()
	entries[0].Content = "tampered"

	assert.Equal(t, "hi", tl.Entries()[0].Content)
}
