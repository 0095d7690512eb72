package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ponyo877/kieru/domain"
)

// RoomSession drives one live room membership. It owns the session
// record, the timeline, the occupant list and the countdown, and is the
// only writer of connection state. Closed is terminal: there is no
// reconnect.
//
// Callbacks fire on the session's own goroutines; UI layers must hop to
// their own event loop (tview's QueueUpdateDraw).
type RoomSession struct {
	gateway RoomGateway
	dial    DialFunc

	mu        sync.RWMutex
	session   domain.Session
	occupants []string
	timeline  *domain.Timeline

	conn      Conn
	countdown *domain.Countdown
	cancel    context.CancelFunc
	exitOnce  sync.Once

	OnEntry     func(entry domain.TimelineEntry)
	OnOccupants func(users []string)
	OnCountdown func(display string, expired bool)
	OnState     func(state domain.ConnectionState)
	OnExit      func()
}

func NewRoomSession(gateway RoomGateway, dial DialFunc, roomName, username string) *RoomSession {
	return &RoomSession{
		gateway:  gateway,
		dial:     dial,
		session:  domain.NewSession(roomName, username),
		timeline: domain.NewTimeline(),
	}
}

// Start seeds occupants and expiry from the room service, opens the
// realtime channel and launches the receive and countdown loops.
// domain.ErrRoomGone aborts: the room is unusable and the caller must
// stay out of the room view. A transient metadata failure does not
// abort; the session starts with an empty occupant list.
func (s *RoomSession) Start(ctx context.Context) error {
	info, err := s.gateway.FetchRoomInfo(ctx, s.session.RoomName)
	switch {
	case errors.Is(err, domain.ErrRoomGone):
		return err
	case err != nil:
		log.Printf("fetch room info: %v", err)
	default:
		s.mu.Lock()
		s.session.ExpireAt = info.ExpireAt
		s.mu.Unlock()
		s.replaceOccupants(info.Users)
	}
	s.countdown = domain.NewCountdown(s.session.ExpireAt)

	conn, err := s.dial(ctx, s.session.RoomName, s.session.Username)
	if err != nil {
		s.setState(domain.StateClosed)
		return err
	}
	s.conn = conn
	s.setState(domain.StateOpen)

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.receiveLoop(runCtx)
	go s.countdownLoop(runCtx)
	return nil
}

func (s *RoomSession) receiveLoop(ctx context.Context) {
	for {
		ev, err := s.conn.ReadEvent()
		if err != nil {
			// Local close and remote error both collapse into the
			// terminal closed state.
			s.setState(domain.StateClosed)
			return
		}
		s.dispatch(ctx, ev)
	}
}

// dispatch runs on the receive goroutine only, so timeline append order
// equals frame arrival order.
func (s *RoomSession) dispatch(ctx context.Context, ev domain.Event) {
	switch ev.Type {
	case domain.EventMessage:
		s.mu.Lock()
		var entry domain.TimelineEntry
		if ev.Kind == domain.MessageImage {
			entry = s.timeline.AppendImage(ev.Username, ev.Content, ev.Timestamp)
		} else {
			entry = s.timeline.AppendText(ev.Username, ev.Content, ev.Timestamp)
		}
		s.mu.Unlock()
		s.notifyEntry(entry)
	case domain.EventUserJoined:
		s.mu.Lock()
		entry := s.timeline.AppendPresence(ev.Username, domain.PresenceJoined, ev.Timestamp)
		s.mu.Unlock()
		s.notifyEntry(entry)
		go s.refreshOccupants(ctx)
	case domain.EventUserLeft:
		s.mu.Lock()
		entry := s.timeline.AppendPresence(ev.Username, domain.PresenceLeft, ev.Timestamp)
		s.mu.Unlock()
		s.notifyEntry(entry)
		go s.refreshOccupants(ctx)
	}
}

// refreshOccupants reconciles against the server's authoritative list.
// Presence events only trigger the refetch and are never applied as
// incremental diffs, so a missed event cannot cause lasting drift.
func (s *RoomSession) refreshOccupants(ctx context.Context) {
	info, err := s.gateway.FetchRoomInfo(ctx, s.session.RoomName)
	switch {
	case errors.Is(err, domain.ErrRoomGone):
		s.Exit(ctx)
	case err != nil:
		// Transient: keep the previous list.
		log.Printf("refresh occupants: %v", err)
	default:
		s.replaceOccupants(info.Users)
	}
}

func (s *RoomSession) countdownLoop(ctx context.Context) {
	s.mu.RLock()
	hasExpiry := s.session.ExpireAt != nil
	s.mu.RUnlock()
	if !hasExpiry {
		return
	}
	if s.tickCountdown(time.Now()) {
		return
	}
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.tickCountdown(now) {
				return
			}
		}
	}
}

func (s *RoomSession) tickCountdown(now time.Time) bool {
	display, expired := s.countdown.Tick(now)
	if s.OnCountdown != nil {
		s.OnCountdown(display, expired)
	}
	return expired
}

// SendText hands a text frame to the channel. While the connection is
// not open this is a silent no-op: nothing is queued and nothing is
// sent. The UI disables the affordance instead.
func (s *RoomSession) SendText(content string) error {
	if s.State() != domain.StateOpen {
		return nil
	}
	return s.conn.Send(domain.NewTextFrame(content))
}

// SendImage validates the attachment up front and encodes it off the
// caller's goroutine. If the connection has closed by the time encoding
// finishes the payload is dropped silently.
func (s *RoomSession) SendImage(data []byte, contentType string) error {
	if err := domain.ValidateAttachment(len(data), contentType); err != nil {
		return err
	}
	go func() {
		content := domain.EncodeAttachment(data, contentType)
		if s.State() != domain.StateOpen {
			return
		}
		if err := s.conn.Send(domain.NewImageFrame(content)); err != nil {
			log.Printf("send image: %v", err)
		}
	}()
	return nil
}

// Exit leaves the room: best-effort leave notification, channel
// teardown, then the unjoined-state callback. Every step runs even when
// an earlier one fails. Safe to call more than once.
func (s *RoomSession) Exit(ctx context.Context) {
	s.exitOnce.Do(func() {
		if err := s.gateway.LeaveRoom(ctx, s.session.RoomName, s.session.Username); err != nil {
			log.Printf("leave room: %v", err)
		}
		if s.conn != nil {
			if err := s.conn.Close(); err != nil {
				log.Printf("close channel: %v", err)
			}
		}
		if s.cancel != nil {
			s.cancel()
		}
		s.setState(domain.StateClosed)
		if s.OnExit != nil {
			s.OnExit()
		}
	})
}

func (s *RoomSession) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *RoomSession) State() domain.ConnectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.State
}

func (s *RoomSession) Occupants() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.occupants))
	copy(out, s.occupants)
	return out
}

// Entries returns the timeline in display order.
func (s *RoomSession) Entries() []domain.TimelineEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeline.Entries()
}

func (s *RoomSession) replaceOccupants(users []string) {
	s.mu.Lock()
	s.occupants = users
	s.mu.Unlock()
	if s.OnOccupants != nil {
		s.OnOccupants(users)
	}
}

func (s *RoomSession) setState(state domain.ConnectionState) {
	s.mu.Lock()
	if s.session.State == state {
		s.mu.Unlock()
		return
	}
	s.session.State = state
	s.mu.Unlock()
	if s.OnState != nil {
		s.OnState(state)
	}
}

func (s *RoomSession) notifyEntry(entry domain.TimelineEntry) {
	if s.OnEntry != nil {
		s.OnEntry(entry)
	}
}
