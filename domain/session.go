package domain

import (
	"time"
)

// ConnectionState tracks the realtime channel lifecycle. Closed is
// terminal: there is no reconnect, a session that loses its channel
// stays disconnected until the user leaves.
type ConnectionState int

const (
	StateConnecting ConnectionState = iota
	StateOpen
	StateClosed
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is one user's participation in one room. It lives only for
// the lifetime of the room view; nothing is persisted.
type Session struct {
	RoomName string
	Username string
	State    ConnectionState
	ExpireAt *time.Time
	JoinedAt time.Time
}

func NewSession(roomName, username string) Session {
	return Session{
		RoomName: roomName,
		Username: username,
		State:    StateConnecting,
		JoinedAt: time.Now(),
	}
}

func (s Session) IsValid() bool {
	return s.RoomName != "" && s.Username != ""
}

func (s Session) String() string {
	return s.Username + "@" + s.RoomName + "(" + s.State.String() + ")"
}
