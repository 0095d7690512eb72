package adaptor

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/ponyo877/kieru/domain"
)

// WSDialer opens the realtime channel of the room service.
type WSDialer struct {
	baseURL string
	dialer  *websocket.Dialer
}

func NewWSDialer(baseURL string) *WSDialer {
	return &WSDialer{
		baseURL: strings.TrimRight(baseURL, "/"),
		dialer:  websocket.DefaultDialer,
	}
}

func (d *WSDialer) Dial(ctx context.Context, roomName, username string) (*WSConn, error) {
	endpoint := d.baseURL + "/ws/" + url.PathEscape(roomName) + "/" + url.PathEscape(username)
	conn, _, err := d.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return &WSConn{conn: conn}, nil
}

// WSConn is a live channel to one room. It has a single owner and must
// not be used after Close.
type WSConn struct {
	conn *websocket.Conn
}

// serverFrame is the wire shape of a server-pushed event.
type serverFrame struct {
	Type        string `json:"type"`
	Username    string `json:"username"`
	Content     string `json:"content"`
	MessageType string `json:"message_type,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// ReadEvent blocks until the next well-formed frame and returns it as a
// typed event. Malformed or unknown frames are logged and skipped; a
// read error means the channel is gone.
func (c *WSConn) ReadEvent() (domain.Event, error) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return domain.Event{}, err
		}
		var f serverFrame
		if err := json.Unmarshal(data, &f); err != nil {
			log.Printf("drop malformed frame: %v", err)
			continue
		}
		switch f.Type {
		case "message":
			kind := domain.MessageText
			if f.MessageType == "image" {
				kind = domain.MessageImage
			}
			return domain.NewMessageEvent(f.Username, f.Content, kind, f.Timestamp), nil
		case "user_joined":
			return domain.NewJoinEvent(f.Username, f.Timestamp), nil
		case "user_left":
			return domain.NewLeaveEvent(f.Username, f.Timestamp), nil
		default:
			log.Printf("drop unknown frame type %q", f.Type)
		}
	}
}

func (c *WSConn) Send(frame domain.Frame) error {
	return c.conn.WriteJSON(frame)
}

func (c *WSConn) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := c.conn.WriteMessage(websocket.CloseMessage, msg); err != nil && err != websocket.ErrCloseSent {
		log.Printf("write close frame: %v", err)
	}
	return c.conn.Close()
}
