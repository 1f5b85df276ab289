package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/engine"
	"github.com/asterah/chaos-full-nightmare/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const backendTimeout = 10 * time.Second

// SessionBackend is the part of the session service the live sync needs.
type SessionBackend interface {
	Get(ctx context.Context, idOrCode string) (*domain.CalcSession, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CalcSession, error)
	Views(ctx context.Context, session *domain.CalcSession) ([]*service.SlotView, error)
	Apply(ctx context.Context, sessionID, userID uuid.UUID, position int, cmd engine.Command) (*service.SlotView, domain.ActionLogEntry, error)
	Undo(ctx context.Context, sessionID, userID uuid.UUID, position int) (*service.SlotView, error)
	Reset(ctx context.Context, sessionID, userID uuid.UUID, position int) (*service.SlotView, error)
}

type Hub struct {
	rooms       map[uuid.UUID]*Room
	clients     map[*Client]bool
	register    chan *Client
	unregister  chan *Client
	joinSession chan *JoinSessionRequest
	stop        chan struct{}
	done        chan struct{} // closed when Run() exits
	stopped     bool
	sessions    SessionBackend
	logger      *zap.Logger
	mu          sync.RWMutex
}

type JoinSessionRequest struct {
	Client    *Client
	SessionID string
}

func NewHub(sessions SessionBackend, logger *zap.Logger) *Hub {
	return &Hub{
		rooms:       make(map[uuid.UUID]*Room),
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		joinSession: make(chan *JoinSessionRequest),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		sessions:    sessions,
		logger:      logger,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			rooms := make([]*Room, 0, len(h.rooms))
			for _, room := range h.rooms {
				rooms = append(rooms, room)
				room.Stop()
			}
			h.mu.Unlock()

			// Wait without holding the lock
			for _, room := range rooms {
				room.Wait()
			}

			// No room is running, so client channels can be closed
			h.mu.Lock()
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.rooms = make(map[uuid.UUID]*Room)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					if room := client.Room(); room != nil {
						h.leaveLocked(room, client)
						client.setRoom(nil)
					}
					client.Close()
				}
			}
			h.mu.Unlock()

		case req := <-h.joinSession:
			h.mu.RLock()
			stopped := h.stopped
			h.mu.RUnlock()
			if !stopped {
				h.handleJoinSession(req)
			}
		}
	}
}

// Stop shuts down the hub and all its rooms. It blocks until every room
// has exited.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

func (h *Hub) handleJoinSession(req *JoinSessionRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()

	session, err := h.sessions.Get(ctx, req.SessionID)
	if err != nil {
		req.Client.sendErr(err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if current := req.Client.Room(); current != nil {
		if current.sessionID == session.ID {
			current.RequestSync(req.Client)
			return
		}
		h.leaveLocked(current, req.Client)
	}

	room := h.roomLocked(session.ID)
	req.Client.setRoom(room)
	room.members++
	room.join <- req.Client
}

// leaveLocked removes client from room and closes the room once nobody is
// left watching.
func (h *Hub) leaveLocked(room *Room, client *Client) {
	room.leave <- client
	room.members--
	if room.members == 0 {
		h.deleteRoomLocked(room)
	}
}

// deleteRoomLocked stops room and forgets it. A later join starts a fresh
// room for the session.
func (h *Hub) deleteRoomLocked(room *Room) {
	if h.rooms[room.sessionID] == room {
		delete(h.rooms, room.sessionID)
	}
	room.Stop()

	h.logger.Debug("room closed", zap.String("session_id", room.sessionID.String()))
}

// roomLocked returns the session's room, starting it on first use.
func (h *Hub) roomLocked(sessionID uuid.UUID) *Room {
	if room, ok := h.rooms[sessionID]; ok {
		return room
	}
	room := NewRoom(sessionID, h.sessions, h.logger)
	h.rooms[sessionID] = room
	go room.Run()

	h.logger.Debug("room started", zap.String("session_id", sessionID.String()))
	return room
}

func (h *Hub) GetRoom(sessionID uuid.UUID) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[sessionID]
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client. It never blocks on a stopped hub.
func (h *Hub) Unregister(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()

	if stopped {
		return
	}

	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// BroadcastSlot pushes a slot view to everyone watching the session.
// Sessions nobody watches are skipped.
func (h *Hub) BroadcastSlot(view *service.SlotView, entry *domain.ActionLogEntry) {
	room := h.GetRoom(view.SessionID)
	if room == nil {
		return
	}
	msg, err := NewMessage(MessageTypeSlotUpdated, SlotUpdatedPayload{Slot: view, Entry: entry})
	if err != nil {
		h.logger.Error("failed to build slot update", zap.Error(err))
		return
	}
	room.Broadcast(msg)
}

// BroadcastSession tells watchers that the tier or slot count changed. The
// room follows the update with a full state sync for every client.
func (h *Hub) BroadcastSession(session *domain.CalcSession) {
	room := h.GetRoom(session.ID)
	if room == nil {
		return
	}
	msg, err := NewMessage(MessageTypeSessionUpdated, SessionUpdatedPayload{Session: NewSessionInfo(session)})
	if err != nil {
		h.logger.Error("failed to build session update", zap.Error(err))
		return
	}
	room.Broadcast(msg)
}
