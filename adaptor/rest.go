package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ponyo877/kieru/domain"
)

// RoomClient talks to the room service's REST API.
type RoomClient struct {
	baseURL string
	client  *http.Client
}

func NewRoomClient(baseURL string) *RoomClient {
	return &RoomClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type roomInfoResponse struct {
	Users       []string `json:"users"`
	HasPassword bool     `json:"has_password"`
	ExpireAt    string   `json:"expire_at,omitempty"`
}

type createRoomRequest struct {
	RoomName      string  `json:"room_name"`
	Password      *string `json:"password"`
	Username      string  `json:"username"`
	ExpireMinutes int     `json:"expire_minutes"`
}

type joinRoomRequest struct {
	RoomName string  `json:"room_name"`
	Password *string `json:"password"`
	Username string  `json:"username"`
}

type roomNameResponse struct {
	RoomName string `json:"room_name"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

// FetchRoomInfo returns the authoritative snapshot of a room. 404 and
// 410 both map to domain.ErrRoomGone; everything else that fails is a
// transient error the caller may retry later.
func (c *RoomClient) FetchRoomInfo(ctx context.Context, roomName string) (domain.RoomInfo, error) {
	endpoint := c.baseURL + "/api/room/" + url.PathEscape(roomName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.RoomInfo{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return domain.RoomInfo{}, fmt.Errorf("fetch room info: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		return domain.RoomInfo{}, domain.ErrRoomGone
	default:
		return domain.RoomInfo{}, fmt.Errorf("fetch room info: unexpected status %d", resp.StatusCode)
	}

	var body roomInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.RoomInfo{}, fmt.Errorf("decode room info: %w", err)
	}
	info := domain.RoomInfo{
		Users:       body.Users,
		HasPassword: body.HasPassword,
	}
	if body.ExpireAt != "" {
		expireAt, err := time.Parse(time.RFC3339, body.ExpireAt)
		if err != nil {
			return domain.RoomInfo{}, fmt.Errorf("parse expire_at: %w", err)
		}
		info.ExpireAt = &expireAt
	}
	return info, nil
}

func (c *RoomClient) CreateRoom(ctx context.Context, cfg domain.RoomConfig) (string, error) {
	body := createRoomRequest{
		RoomName:      cfg.RoomName,
		Password:      optional(cfg.Password),
		Username:      cfg.Username,
		ExpireMinutes: cfg.ExpireMinutes,
	}
	var res roomNameResponse
	if err := c.post(ctx, "/api/create-room", body, &res); err != nil {
		return "", err
	}
	return res.RoomName, nil
}

func (c *RoomClient) JoinRoom(ctx context.Context, roomName, password, username string) (string, error) {
	body := joinRoomRequest{
		RoomName: roomName,
		Password: optional(password),
		Username: username,
	}
	var res roomNameResponse
	if err := c.post(ctx, "/api/join-room", body, &res); err != nil {
		return "", err
	}
	return res.RoomName, nil
}

// LeaveRoom notifies the service that the user left. The response is
// ignored: only a transport failure is reported, and callers treat even
// that as best-effort.
func (c *RoomClient) LeaveRoom(ctx context.Context, roomName, username string) error {
	endpoint := c.baseURL + "/api/leave-room/" + url.PathEscape(roomName) + "/" + url.PathEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("leave room: %w", err)
	}
	resp.Body.Close()
	return nil
}

func (c *RoomClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var detail detailResponse
		if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil && detail.Detail != "" {
			// "Incorrect password" is a recognized sentinel the join
			// flow matches on to re-prompt.
			if detail.Detail == "Incorrect password" {
				return domain.ErrIncorrectPassword
			}
			return fmt.Errorf("%s", detail.Detail)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
