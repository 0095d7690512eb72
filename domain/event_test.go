package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventConstructors(t *testing.T) {
	msg := NewMessageEvent("alice", "hi", MessageText, "t1")
	assert.Equal(t, EventMessage, msg.Type)
	assert.True(t, msg.IsValid())

	img := NewMessageEvent("bob", "data:image/png;base64,AAAA", MessageImage, "t2")
	assert.Equal(t, MessageImage, img.Kind)

	join := NewJoinEvent("carol", "t3")
	assert.Equal(t, EventUserJoined, join.Type)
	assert.True(t, join.IsValid())

	left := NewLeaveEvent("carol", "t4")
	assert.Equal(t, EventUserLeft, left.Type)
}

func TestEventInvalidWithoutUsername(t *testing.T) {
	assert.False(t, Event{Type: EventMessage}.IsValid())
	assert.False(t, Event{Type: EventType(99), Username: "alice"}.IsValid())
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "message", EventMessage.String())
	assert.Equal(t, "user_joined", EventUserJoined.String())
	assert.Equal(t, "user_left", EventUserLeft.String())
	assert.Equal(t, "unknown", EventType(99).String())
}
