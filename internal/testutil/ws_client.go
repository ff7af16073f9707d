package testutil

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dom/whatnot-go/internal/websocket"
	gorillaWS "github.com/gorilla/websocket"
)

// WSClient is a test WebSocket client
type WSClient struct {
	t        *testing.T
	conn     *gorillaWS.Conn
	messages chan *websocket.Message
	errors   chan error
	done     chan struct{}
	mu       sync.Mutex
}

// NewWSClient creates a new WebSocket test client
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	dialer := *gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	client := &WSClient{
		t:        t,
		conn:     conn,
		messages: make(chan *websocket.Message, 100),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}

	go client.readPump()

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

// readPump reads messages until the connection fails or is closed. The
// terminating error is delivered on errors.
func (c *WSClient) readPump() {
	defer close(c.messages)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.errors <- err
			return
		}

		var msg websocket.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.errors <- err
			return
		}

		select {
		case c.messages <- &msg:
		case <-c.done:
			return
		}
	}
}

// Close closes the WebSocket connection gracefully
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
		close(c.done)
		c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
		c.conn.Close()
	}
}

// ExpectMessage waits for the next message and checks its type
func (c *WSClient) ExpectMessage(msgType websocket.MessageType, timeout time.Duration) *websocket.Message {
	c.t.Helper()

	select {
	case msg, ok := <-c.messages:
		if !ok {
			c.t.Fatalf("connection closed while waiting for %s", msgType)
		}
		if msg.Type != msgType {
			c.t.Fatalf("expected message type %s, got %s: %s", msgType, msg.Type, msg.Payload)
		}
		return msg
	case <-time.After(timeout):
		c.t.Fatalf("timeout waiting for message type %s", msgType)
	}
	return nil
}

// ExpectSnapshot waits for and decodes a SNAPSHOT message
func (c *WSClient) ExpectSnapshot(timeout time.Duration) *websocket.SnapshotPayload {
	c.t.Helper()

	msg := c.ExpectMessage(websocket.MessageTypeSnapshot, timeout)

	var payload websocket.SnapshotPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.t.Fatalf("failed to unmarshal snapshot: %v", err)
	}
	return &payload
}

// ExpectClosed waits for the server to close the connection normally
func (c *WSClient) ExpectClosed(timeout time.Duration) {
	c.t.Helper()

	deadline := time.After(timeout)
	messages := c.messages
	for {
		select {
		case msg, ok := <-messages:
			if ok {
				c.t.Fatalf("expected close, got %s message", msg.Type)
			}
			messages = nil
		case err := <-c.errors:
			if !gorillaWS.IsCloseError(err, gorillaWS.CloseNormalClosure) {
				c.t.Fatalf("expected normal closure, got %v", err)
			}
			return
		case <-deadline:
			c.t.Fatalf("timeout waiting for connection close")
		}
	}
}
