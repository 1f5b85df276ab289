package testutil

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/asterah/chaos-full-nightmare/internal/engine"
	"github.com/asterah/chaos-full-nightmare/internal/websocket"
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

	dialer := gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	client := &WSClient{
		t:        t,
		conn:     conn,
		messages: make(chan *websocket.Message, 100),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
	}

	go client.readPump()

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

// readPump reads messages from the WebSocket connection
func (c *WSClient) readPump() {
	defer close(c.messages)
	for {
		select {
		case <-c.done:
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				select {
				case <-c.done:
					return
				case c.errors <- err:
				}
				return
			}

			var msg websocket.Message
			if err := json.Unmarshal(data, &msg); err != nil {
				c.errors <- err
				continue
			}

			select {
			case c.messages <- &msg:
			case <-c.done:
				return
			}
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
		// Send close frame and close connection without artificial delay
		c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
		c.conn.Close()
	}
}

// send marshals payload into a message envelope and writes it
func (c *WSClient) send(msgType websocket.MessageType, payload interface{}) {
	c.t.Helper()

	msg, err := websocket.NewMessage(msgType, payload)
	if err != nil {
		c.t.Fatalf("failed to build %s message: %v", msgType, err)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		c.t.Fatalf("failed to marshal message: %v", err)
	}

	c.mu.Lock()
	err = c.conn.WriteMessage(gorillaWS.TextMessage, data)
	c.mu.Unlock()

	if err != nil {
		c.t.Fatalf("failed to send %s: %v", msgType, err)
	}
}

// JoinSession sends JOIN_SESSION with a session id or short code
func (c *WSClient) JoinSession(idOrCode string) {
	c.send(websocket.MessageTypeJoinSession, websocket.JoinSessionPayload{SessionID: idOrCode})
}

// SlotAction sends SLOT_ACTION
func (c *WSClient) SlotAction(position int, cmd engine.Command) {
	c.send(websocket.MessageTypeSlotAction, websocket.SlotActionPayload{Position: position, Command: cmd})
}

// Undo sends UNDO
func (c *WSClient) Undo(position int) {
	c.send(websocket.MessageTypeUndo, websocket.SlotPayload{Position: position})
}

// Reset sends RESET
func (c *WSClient) Reset(position int) {
	c.send(websocket.MessageTypeReset, websocket.SlotPayload{Position: position})
}

// SyncState sends SYNC_STATE
func (c *WSClient) SyncState() {
	c.send(websocket.MessageTypeSyncState, nil)
}

// ExpectMessage waits for a message of the specified type
func (c *WSClient) ExpectMessage(msgType websocket.MessageType, timeout time.Duration) *websocket.Message {
	c.t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case msg := <-c.messages:
			if msg == nil {
				c.t.Fatalf("connection closed while waiting for %s", msgType)
			}
			if msg.Type == msgType {
				return msg
			}
			// Skip other message types
		case err := <-c.errors:
			c.t.Fatalf("error while waiting for %s: %v", msgType, err)
		case <-deadline:
			c.t.Fatalf("timeout waiting for message type %s", msgType)
		}
	}
}

// ExpectStateSync waits for and decodes a STATE_SYNC message
func (c *WSClient) ExpectStateSync(timeout time.Duration) *websocket.StateSyncPayload {
	c.t.Helper()

	msg := c.ExpectMessage(websocket.MessageTypeStateSync, timeout)

	var payload websocket.StateSyncPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.t.Fatalf("failed to decode state sync payload: %v", err)
	}

	return &payload
}

// ExpectSlotUpdated waits for and decodes a SLOT_UPDATED message
func (c *WSClient) ExpectSlotUpdated(timeout time.Duration) *websocket.SlotUpdatedPayload {
	c.t.Helper()

	msg := c.ExpectMessage(websocket.MessageTypeSlotUpdated, timeout)

	var payload websocket.SlotUpdatedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.t.Fatalf("failed to decode slot updated payload: %v", err)
	}

	return &payload
}

// ExpectSessionUpdated waits for and decodes a SESSION_UPDATED message
func (c *WSClient) ExpectSessionUpdated(timeout time.Duration) *websocket.SessionUpdatedPayload {
	c.t.Helper()

	msg := c.ExpectMessage(websocket.MessageTypeSessionUpdated, timeout)

	var payload websocket.SessionUpdatedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.t.Fatalf("failed to decode session updated payload: %v", err)
	}

	return &payload
}

// ExpectError waits for and decodes an ERROR message
func (c *WSClient) ExpectError(timeout time.Duration) *websocket.ErrorPayload {
	c.t.Helper()

	msg := c.ExpectMessage(websocket.MessageTypeError, timeout)

	var payload websocket.ErrorPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.t.Fatalf("failed to decode error payload: %v", err)
	}

	return &payload
}

// ExpectErrorWithCode waits for an error with a specific code
func (c *WSClient) ExpectErrorWithCode(code string, timeout time.Duration) *websocket.ErrorPayload {
	c.t.Helper()

	payload := c.ExpectError(timeout)
	if payload.Code != code {
		c.t.Fatalf("expected error code %s, got %s: %s", code, payload.Code, payload.Message)
	}

	return payload
}

// ExpectNoMessage verifies no messages are received within timeout
func (c *WSClient) ExpectNoMessage(timeout time.Duration) {
	c.t.Helper()

	select {
	case msg := <-c.messages:
		if msg != nil {
			c.t.Fatalf("unexpected message received: %s", msg.Type)
		}
	case <-time.After(timeout):
		// Expected - no message received
	}
}

// DrainMessages drains all pending messages from the channel with a timeout.
func (c *WSClient) DrainMessages() {
	c.DrainMessagesWithTimeout(100 * time.Millisecond)
}

// DrainMessagesWithTimeout drains messages, waiting up to timeout for the channel to settle.
func (c *WSClient) DrainMessagesWithTimeout(timeout time.Duration) {
	deadline := time.After(timeout)
	for {
		select {
		case msg := <-c.messages:
			if msg == nil {
				return
			}
			// Reset deadline when we receive a message - more might be coming
			deadline = time.After(50 * time.Millisecond)
		case <-deadline:
			return
		case <-c.done:
			return
		}
	}
}
