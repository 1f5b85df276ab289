package websocket

import (
	"encoding/json"
	"time"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/engine"
	"github.com/asterah/chaos-full-nightmare/internal/service"
)

type MessageType string

const (
	// Client to Server
	MessageTypeJoinSession MessageType = "JOIN_SESSION"
	MessageTypeSlotAction  MessageType = "SLOT_ACTION"
	MessageTypeUndo        MessageType = "UNDO"
	MessageTypeReset       MessageType = "RESET"
	MessageTypeSyncState   MessageType = "SYNC_STATE"

	// Server to Client
	MessageTypeStateSync      MessageType = "STATE_SYNC"
	MessageTypeSlotUpdated    MessageType = "SLOT_UPDATED"
	MessageTypeSessionUpdated MessageType = "SESSION_UPDATED"
	MessageTypeError          MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
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

// Client to Server payloads

type JoinSessionPayload struct {
	SessionID string `json:"sessionId"` // uuid or short code
}

type SlotActionPayload struct {
	Position int            `json:"position"`
	Command  engine.Command `json:"command"`
}

type SlotPayload struct {
	Position int `json:"position"`
}

// Server to Client payloads

type SessionInfo struct {
	ID         string `json:"id"`
	ShortCode  string `json:"shortCode"`
	OwnerID    string `json:"ownerId"`
	Tier       int    `json:"tier"`
	SlotCount  int    `json:"slotCount"`
	ScoreLimit int    `json:"scoreLimit"`
}

func NewSessionInfo(session *domain.CalcSession) SessionInfo {
	return SessionInfo{
		ID:         session.ID.String(),
		ShortCode:  session.ShortCode,
		OwnerID:    session.OwnerID.String(),
		Tier:       session.Tier,
		SlotCount:  session.SlotCount,
		ScoreLimit: session.ScoreLimit(),
	}
}

type StateSyncPayload struct {
	Session SessionInfo         `json:"session"`
	Slots   []*service.SlotView `json:"slots"`
	IsOwner bool                `json:"isOwner"`
	Viewers int                 `json:"viewers"`
}

type SlotUpdatedPayload struct {
	Slot  *service.SlotView      `json:"slot"`
	Entry *domain.ActionLogEntry `json:"entry,omitempty"`
}

type SessionUpdatedPayload struct {
	Session SessionInfo `json:"session"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
