package domain

import (
	"errors"
	"time"
)

var (
	// ErrRoomGone means the room does not exist or has already been
	// destroyed. Unlike a transport failure it is never retried; the
	// caller must leave the room view.
	ErrRoomGone = errors.New("room not found or expired")

	// ErrIncorrectPassword is matched against the service's
	// "Incorrect password" detail string on join.
	ErrIncorrectPassword = errors.New("incorrect password")
)

// RoomInfo is the server's authoritative snapshot of a room. Users
// replaces the occupant list wholesale on every fetch; presence events
// only trigger a refetch, they are never applied as diffs.
type RoomInfo struct {
	Users       []string
	HasPassword bool
	ExpireAt    *time.Time
}

// RoomConfig is the creation request for a new room. An empty Password
// creates an open room.
type RoomConfig struct {
	RoomName      string
	Password      string
	Username      string
	ExpireMinutes int
}
