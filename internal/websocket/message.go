package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/whatnot-go/internal/domain"
)

type MessageType string

// Server to client only; anything a client sends is read and dropped.
const (
	MessageTypeSnapshot MessageType = "SNAPSHOT"
	MessageTypeEnded    MessageType = "ENDED"
	MessageTypeError    MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
	Seq       int             `json:"seq,omitempty"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// SnapshotPayload is the part of a live stream that watchers are told about.
// A new snapshot is pushed whenever it changes.
type SnapshotPayload struct {
	ID                  string            `json:"id"`
	Status              domain.LiveStatus `json:"status"`
	Title               string            `json:"title"`
	ActiveViewers       int               `json:"activeViewers"`
	TotalWatchlistUsers int               `json:"totalWatchlistUsers"`
	PinnedProductID     string            `json:"pinnedProductId,omitempty"`
}

func NewSnapshot(live *domain.LiveStream) SnapshotPayload {
	snap := SnapshotPayload{
		ID:                  live.ID,
		Status:              live.Status,
		Title:               live.Title,
		ActiveViewers:       live.ActiveViewers,
		TotalWatchlistUsers: live.TotalWatchlistUsers,
	}
	if live.PinnedProductID != nil {
		snap.PinnedProductID = *live.PinnedProductID
	}
	return snap
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
