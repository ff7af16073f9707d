package websocket_test

import (
	"encoding/json"
	"testing"

	"github.com/dom/whatnot-go/internal/domain"
	"github.com/dom/whatnot-go/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot(t *testing.T) {
	pinned := "777"
	live := &domain.LiveStream{
		ID:                  "12345",
		Status:              domain.LiveStatusLive,
		Title:               "Friday night breaks",
		ActiveViewers:       300,
		TotalWatchlistUsers: 42,
		PinnedProductID:     &pinned,
	}

	snap := websocket.NewSnapshot(live)
	assert.Equal(t, websocket.SnapshotPayload{
		ID:                  "12345",
		Status:              domain.LiveStatusLive,
		Title:               "Friday night breaks",
		ActiveViewers:       300,
		TotalWatchlistUsers: 42,
		PinnedProductID:     "777",
	}, snap)

	live.PinnedProductID = nil
	assert.Empty(t, websocket.NewSnapshot(live).PinnedProductID)
}

func TestNewMessage(t *testing.T) {
	msg, err := websocket.NewMessage(websocket.MessageTypeError, websocket.ErrorPayload{Code: "NOT_FOUND", Message: "gone"})
	require.NoError(t, err)

	assert.Equal(t, websocket.MessageTypeError, msg.Type)
	assert.Positive(t, msg.Timestamp)
	assert.JSONEq(t, `{"code": "NOT_FOUND", "message": "gone"}`, string(msg.Payload))

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "seq")
}
