package websocket

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Room fans messages out to every client watching one calculator session.
// Its goroutine owns the client set.
type Room struct {
	sessionID uuid.UUID
	clients   map[*Client]bool
	sessions  SessionBackend
	logger    *zap.Logger

	// members counts joined clients. Only the hub touches it, under Hub.mu.
	members int

	// Channels
	join      chan *Client
	leave     chan *Client
	broadcast chan *Message
	syncState chan *Client
	stop      chan struct{}
	done      chan struct{}
}

func NewRoom(sessionID uuid.UUID, sessions SessionBackend, logger *zap.Logger) *Room {
	return &Room{
		sessionID: sessionID,
		clients:   make(map[*Client]bool),
		sessions:  sessions,
		logger:    logger.With(zap.String("session_id", sessionID.String())),
		join:      make(chan *Client),
		leave:     make(chan *Client),
		broadcast: make(chan *Message, 64),
		syncState: make(chan *Client, 16),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (r *Room) Run() {
	defer close(r.done)

	for {
		select {
		case <-r.stop:
			return

		case client := <-r.join:
			r.clients[client] = true
			r.sendStateSync(client)

		case client := <-r.leave:
			delete(r.clients, client)

		case msg := <-r.broadcast:
			r.broadcastMessage(msg)
			// Tier and slot count changes invalidate every slot view
			if msg.Type == MessageTypeSessionUpdated {
				r.resyncAll()
			}

		case client := <-r.syncState:
			if r.clients[client] {
				r.sendStateSync(client)
			}
		}
	}
}

// Stop asks the room goroutine to exit. Use Wait to block until it has.
func (r *Room) Stop() {
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
}

func (r *Room) Wait() {
	<-r.done
}

// Broadcast queues msg for every client in the room.
func (r *Room) Broadcast(msg *Message) {
	select {
	case r.broadcast <- msg:
	case <-r.done:
	}
}

// RequestSync queues a full state sync for one client.
func (r *Room) RequestSync(client *Client) {
	select {
	case r.syncState <- client:
	case <-r.done:
	}
}

func (r *Room) resyncAll() {
	for client := range r.clients {
		r.sendStateSync(client)
	}
}

func (r *Room) broadcastMessage(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.logger.Error("failed to marshal broadcast", zap.Error(err))
		return
	}
	for client := range r.clients {
		r.trySend(client, data)
	}
}

// trySend delivers without blocking. A client whose buffer is full misses
// the message and catches up on its next state sync.
func (r *Room) trySend(client *Client, data []byte) {
	defer func() {
		if recover() != nil {
			// Channel closed, client is disconnecting
		}
	}()

	select {
	case client.send <- data:
	default:
		r.logger.Warn("client send buffer full", zap.String("user_id", client.userID.String()))
	}
}

func (r *Room) sendStateSync(client *Client) {
	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()

	session, err := r.sessions.GetByID(ctx, r.sessionID)
	if err != nil {
		client.sendErr(err)
		return
	}
	views, err := r.sessions.Views(ctx, session)
	if err != nil {
		r.logger.Error("failed to render session", zap.Error(err))
		client.sendErr(err)
		return
	}

	msg, err := NewMessage(MessageTypeStateSync, StateSyncPayload{
		Session: NewSessionInfo(session),
		Slots:   views,
		IsOwner: session.OwnerID == client.userID,
		Viewers: len(r.clients),
	})
	if err != nil {
		r.logger.Error("failed to build state sync", zap.Error(err))
		return
	}
	data, _ := json.Marshal(msg)
	r.trySend(client, data)
}
