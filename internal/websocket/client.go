// Package websocket streams live stream changes to websocket watchers by
// polling the platform.
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dom/whatnot-go/internal/domain"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// LiveSource fetches the current state of a live stream.
type LiveSource interface {
	GetLive(ctx context.Context, id string) (*domain.LiveStream, error)
}

// Watch pushes snapshots of one live stream to one connection until the
// stream ends, disappears or the peer goes away.
type Watch struct {
	conn     *websocket.Conn
	source   LiveSource
	liveID   string
	interval time.Duration
	logger   *slog.Logger

	send chan []byte
	done chan struct{}
	seq  int
}

func NewWatch(conn *websocket.Conn, source LiveSource, liveID string, interval time.Duration, logger *slog.Logger) *Watch {
	return &Watch{
		conn:     conn,
		source:   source,
		liveID:   liveID,
		interval: interval,
		logger:   logger.With(slog.String("live_id", liveID)),
		send:     make(chan []byte, 16),
		done:     make(chan struct{}),
	}
}

// Run sends the initial snapshot, then polls every interval. It blocks until
// the connection is closed.
func (w *Watch) Run(ctx context.Context, initial *domain.LiveStream) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go w.readPump()
	go w.poll(ctx, initial)
	w.writePump()
}

func (w *Watch) poll(ctx context.Context, initial *domain.LiveStream) {
	defer close(w.send)

	last := NewSnapshot(initial)
	if !w.queue(MessageTypeSnapshot, last) {
		return
	}
	if initial.Status == domain.LiveStatusEnded {
		w.queue(MessageTypeEnded, last)
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-ticker.C:
		}

		live, err := w.source.GetLive(ctx, w.liveID)
		if err != nil {
			w.logger.Warn("poll failed", slog.Any("error", err))
			if !w.queue(MessageTypeError, ErrorPayload{Code: "POLL_FAILED", Message: err.Error()}) {
				return
			}
			continue
		}
		if live == nil {
			w.queue(MessageTypeError, ErrorPayload{Code: "NOT_FOUND", Message: "live stream no longer exists"})
			return
		}

		snap := NewSnapshot(live)
		if snap != last {
			last = snap
			if !w.queue(MessageTypeSnapshot, snap) {
				return
			}
		}
		if live.Status == domain.LiveStatusEnded {
			w.queue(MessageTypeEnded, snap)
			return
		}
	}
}

// queue reports false once the reader has gone away.
func (w *Watch) queue(msgType MessageType, payload interface{}) bool {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		w.logger.Error("failed to build message", slog.Any("error", err))
		return true
	}
	w.seq++
	msg.Seq = w.seq

	data, err := json.Marshal(msg)
	if err != nil {
		w.logger.Error("failed to marshal message", slog.Any("error", err))
		return true
	}

	select {
	case w.send <- data:
		return true
	case <-w.done:
		return false
	}
}

func (w *Watch) readPump() {
	defer close(w.done)

	w.conn.SetReadLimit(maxMessageSize)
	w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error {
		w.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				w.logger.Debug("websocket read error", slog.Any("error", err))
			}
			return
		}
	}
}

func (w *Watch) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		w.conn.Close()
	}()

	for {
		select {
		case message, ok := <-w.send:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				w.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "watch finished"))
				return
			}

			if err := w.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
