package domain

type EventType int

const (
	EventMessage EventType = iota
	EventUserJoined
	EventUserLeft
)

func (t EventType) String() string {
	switch t {
	case EventMessage:
		return "message"
	case EventUserJoined:
		return "user_joined"
	case EventUserLeft:
		return "user_left"
	default:
		return "unknown"
	}
}

type MessageKind int

const (
	MessageText MessageKind = iota
	MessageImage
)

func (k MessageKind) String() string {
	if k == MessageImage {
		return "image"
	}
	return "text"
}

// Event is one server-pushed frame, already decoded from the wire.
// Timestamp is the server-supplied ISO-8601 string, passed through
// verbatim; arrival order, not timestamp order, decides display order.
type Event struct {
	Type      EventType
	Username  string
	Content   string
	Kind      MessageKind
	Timestamp string
}

func NewMessageEvent(username, content string, kind MessageKind, timestamp string) Event {
	return Event{
		Type:      EventMessage,
		Username:  username,
		Content:   content,
		Kind:      kind,
		Timestamp: timestamp,
	}
}

func NewJoinEvent(username, timestamp string) Event {
	return Event{
		Type:      EventUserJoined,
		Username:  username,
		Timestamp: timestamp,
	}
}

func NewLeaveEvent(username, timestamp string) Event {
	return Event{
		Type:      EventUserLeft,
		Username:  username,
		Timestamp: timestamp,
	}
}

func (e Event) IsValid() bool {
	switch e.Type {
	case EventMessage, EventUserJoined, EventUserLeft:
		return e.Username != ""
	default:
		return false
	}
}

func (e Event) String() string {
	return e.Type.String() + ": " + e.Username + " - " + e.Content
}

// Frame is an outbound message in the shape the room service expects.
type Frame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

const (
	FrameTypeText  = "text"
	FrameTypeImage = "image"
)

func NewTextFrame(content string) Frame {
	return Frame{Type: FrameTypeText, Content: content}
}

func NewImageFrame(content string) Frame {
	return Frame{Type: FrameTypeImage, Content: content}
}
