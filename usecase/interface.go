package usecase

import (
	"context"

	"github.com/ponyo877/kieru/domain"
)

// RoomGateway is the REST surface of the room service.
type RoomGateway interface {
	// FetchRoomInfo returns the authoritative room snapshot.
	// domain.ErrRoomGone is a hard failure; any other error is
	// transient and the caller keeps its previous state.
	FetchRoomInfo(ctx context.Context, roomName string) (domain.RoomInfo, error)

	CreateRoom(ctx context.Context, cfg domain.RoomConfig) (string, error)

	// JoinRoom returns domain.ErrIncorrectPassword when the service
	// rejects the password.
	JoinRoom(ctx context.Context, roomName, password, username string) (string, error)

	// LeaveRoom is best-effort; the response is ignored.
	LeaveRoom(ctx context.Context, roomName, username string) error
}

// Conn is the live bidirectional channel to one room. ReadEvent blocks
// until the next server frame and delivers frames strictly in arrival
// order. A Conn has exactly one owner and must not be used after Close.
type Conn interface {
	ReadEvent() (domain.Event, error)
	Send(frame domain.Frame) error
	Close() error
}

// DialFunc opens the realtime channel for a session.
type DialFunc func(ctx context.Context, roomName, username string) (Conn, error)
