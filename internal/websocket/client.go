package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/engine"
	"github.com/asterah/chaos-full-nightmare/internal/service"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uuid.UUID
	logger *zap.Logger

	mu        sync.Mutex
	room      *Room
	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
		logger: hub.logger.With(zap.String("user_id", userID.String())),
	}
}

func (c *Client) Room() *Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func (c *Client) setRoom(room *Room) {
	c.mu.Lock()
	c.room = room
	c.mu.Unlock()
}

// Close closes the send channel, which makes WritePump send a close frame.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket error", zap.Error(err))
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("INVALID_MESSAGE", "Message is not valid JSON")
			continue
		}

		c.handleMessage(&msg)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeJoinSession:
		var payload JoinSessionPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.SessionID == "" {
			c.sendError("INVALID_PAYLOAD", "Invalid join session payload")
			return
		}
		select {
		case c.hub.joinSession <- &JoinSessionRequest{Client: c, SessionID: payload.SessionID}:
		case <-c.hub.done:
		}

	case MessageTypeSlotAction:
		var payload SlotActionPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid slot action payload")
			return
		}
		c.mutate(func(ctx context.Context, room *Room) error {
			view, entry, err := c.hub.sessions.Apply(ctx, room.sessionID, c.userID, payload.Position, payload.Command)
			if err != nil {
				return err
			}
			c.hub.BroadcastSlot(view, &entry)
			return nil
		})

	case MessageTypeUndo, MessageTypeReset:
		var payload SlotPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid slot payload")
			return
		}
		c.mutate(func(ctx context.Context, room *Room) error {
			rewind := c.hub.sessions.Undo
			if msg.Type == MessageTypeReset {
				rewind = c.hub.sessions.Reset
			}
			view, err := rewind(ctx, room.sessionID, c.userID, payload.Position)
			if err != nil {
				return err
			}
			c.hub.BroadcastSlot(view, nil)
			return nil
		})

	case MessageTypeSyncState:
		if room := c.Room(); room != nil {
			room.RequestSync(c)
		} else {
			c.sendError("NOT_IN_SESSION", "Join a session first")
		}

	default:
		c.sendError("UNKNOWN_MESSAGE", "Unknown message type")
	}
}

// mutate runs fn against the client's current room. Failures are reported
// to this client only.
func (c *Client) mutate(fn func(ctx context.Context, room *Room) error) {
	room := c.Room()
	if room == nil {
		c.sendError("NOT_IN_SESSION", "Join a session first")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()

	if err := fn(ctx, room); err != nil {
		c.sendErr(err)
	}
}

func (c *Client) sendErr(err error) {
	code := errorCode(err)
	if code == "INTERNAL_ERROR" {
		c.logger.Error("session operation failed", zap.Error(err))
		c.sendError(code, "Internal error")
		return
	}
	c.sendError(code, err.Error())
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return "SESSION_NOT_FOUND"
	case errors.Is(err, service.ErrSlotNotFound):
		return "SLOT_NOT_FOUND"
	case errors.Is(err, service.ErrNotSessionOwner):
		return "NOT_OWNER"
	case errors.Is(err, service.ErrCombatantNotFound):
		return "COMBATANT_NOT_FOUND"
	case errors.Is(err, engine.ErrCardNotFound):
		return "CARD_NOT_FOUND"
	case errors.Is(err, engine.ErrCardNotNeutral),
		errors.Is(err, engine.ErrStateLocked),
		errors.Is(err, engine.ErrStateNotAllowed):
		return "ACTION_NOT_ALLOWED"
	case errors.Is(err, engine.ErrUnknownCommand),
		errors.Is(err, engine.ErrMissingCard),
		errors.Is(err, domain.ErrInvalidCardType),
		errors.Is(err, domain.ErrInvalidCardState):
		return "INVALID_COMMAND"
	}
	return "INTERNAL_ERROR"
}

func (c *Client) sendError(code, message string) {
	msg, _ := NewMessage(MessageTypeError, ErrorPayload{
		Code:    code,
		Message: message,
	})
	c.Send(msg)
}

// Send queues msg for this client without blocking.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("failed to marshal message", zap.Error(err))
		return
	}
	defer func() {
		if recover() != nil {
			// Channel closed, client is disconnecting
		}
	}()
	select {
	case c.send <- data:
	default:
	}
}
