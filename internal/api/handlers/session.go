package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/asterah/chaos-full-nightmare/internal/api/middleware"
	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/engine"
	"github.com/asterah/chaos-full-nightmare/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Broadcaster pushes changes to live viewers of a session.
type Broadcaster interface {
	BroadcastSlot(view *service.SlotView, entry *domain.ActionLogEntry)
	BroadcastSession(session *domain.CalcSession)
}

type SessionHandler struct {
	sessionService *service.SessionService
	broadcaster    Broadcaster
	logger         *zap.Logger
}

func NewSessionHandler(sessionService *service.SessionService, broadcaster Broadcaster, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		broadcaster:    broadcaster,
		logger:         logger,
	}
}

type CreateSessionRequest struct {
	Tier      int `json:"tier"`
	SlotCount int `json:"slotCount"`
}

type SetTierRequest struct {
	Tier int `json:"tier"`
}

type SetSlotCountRequest struct {
	SlotCount int `json:"slotCount"`
}

type ChangeCombatantRequest struct {
	CombatantID string `json:"combatantId"`
}

type SessionResponse struct {
	ID         string `json:"id"`
	ShortCode  string `json:"shortCode"`
	OwnerID    string `json:"ownerId"`
	Tier       int    `json:"tier"`
	SlotCount  int    `json:"slotCount"`
	ScoreLimit int    `json:"scoreLimit"`
}

type SessionDetailResponse struct {
	Session SessionResponse     `json:"session"`
	Slots   []*service.SlotView `json:"slots"`
	IsOwner bool                `json:"isOwner"`
}

type ActionResponse struct {
	Slot  *service.SlotView     `json:"slot"`
	Entry domain.ActionLogEntry `json:"entry"`
}

func newSessionResponse(s *domain.CalcSession) SessionResponse {
	return SessionResponse{
		ID:         s.ID.String(),
		ShortCode:  s.ShortCode,
		OwnerID:    s.OwnerID.String(),
		Tier:       s.Tier,
		SlotCount:  s.SlotCount,
		ScoreLimit: s.ScoreLimit(),
	}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// An empty body takes the defaults
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.sessionService.Create(r.Context(), service.CreateSessionInput{
		OwnerID:   userID,
		Tier:      req.Tier,
		SlotCount: req.SlotCount,
	})
	if err != nil {
		writeError(w, h.logger, "session.Create", err)
		return
	}

	h.writeDetail(w, r, http.StatusCreated, session, userID, "session.Create")
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	session, err := h.sessionService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, "session.Get", err)
		return
	}

	h.writeDetail(w, r, http.StatusOK, session, userID, "session.Get")
}

func (h *SessionHandler) GetUserSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	sessions, err := h.sessionService.GetUserSessions(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, h.logger, "session.GetUserSessions", err)
		return
	}

	resp := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		resp[i] = newSessionResponse(s)
	}
	writeJSON(w, resp)
}

func (h *SessionHandler) SetTier(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	var req SetTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.sessionService.SetTier(r.Context(), sessionID, userID, req.Tier)
	if err != nil {
		writeError(w, h.logger, "session.SetTier", err)
		return
	}

	h.broadcaster.BroadcastSession(session)
	h.writeDetail(w, r, http.StatusOK, session, userID, "session.SetTier")
}

func (h *SessionHandler) SetSlotCount(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	var req SetSlotCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.sessionService.SetSlotCount(r.Context(), sessionID, userID, req.SlotCount)
	if err != nil {
		writeError(w, h.logger, "session.SetSlotCount", err)
		return
	}

	h.broadcaster.BroadcastSession(session)
	h.writeDetail(w, r, http.StatusOK, session, userID, "session.SetSlotCount")
}

func (h *SessionHandler) GetSlot(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}
	position, ok := slotPosition(w, r)
	if !ok {
		return
	}

	view, err := h.sessionService.View(r.Context(), sessionID, position)
	if err != nil {
		writeError(w, h.logger, "session.GetSlot", err)
		return
	}
	writeJSON(w, view)
}

func (h *SessionHandler) ChangeCombatant(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, ok := h.sessionParams(w, r)
	if !ok {
		return
	}
	position, ok := slotPosition(w, r)
	if !ok {
		return
	}

	var req ChangeCombatantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CombatantID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.sessionService.ChangeCharacter(r.Context(), sessionID, userID, position, req.CombatantID)
	if err != nil {
		writeError(w, h.logger, "session.ChangeCombatant", err)
		return
	}

	h.broadcaster.BroadcastSlot(view, nil)
	writeJSON(w, view)
}

func (h *SessionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, ok := h.sessionParams(w, r)
	if !ok {
		return
	}
	position, ok := slotPosition(w, r)
	if !ok {
		return
	}

	var cmd engine.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, entry, err := h.sessionService.Apply(r.Context(), sessionID, userID, position, cmd)
	if err != nil {
		writeError(w, h.logger, "session.Apply", err)
		return
	}

	h.broadcaster.BroadcastSlot(view, &entry)
	writeJSON(w, ActionResponse{Slot: view, Entry: entry})
}

func (h *SessionHandler) Undo(w http.ResponseWriter, r *http.Request) {
	h.rewind(w, r, "session.Undo", h.sessionService.Undo)
}

func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.rewind(w, r, "session.Reset", h.sessionService.Reset)
}

func (h *SessionHandler) rewind(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context, sessionID, userID uuid.UUID, position int) (*service.SlotView, error)) {
	sessionID, userID, ok := h.sessionParams(w, r)
	if !ok {
		return
	}
	position, ok := slotPosition(w, r)
	if !ok {
		return
	}

	view, err := fn(r.Context(), sessionID, userID, position)
	if err != nil {
		writeError(w, h.logger, op, err)
		return
	}

	h.broadcaster.BroadcastSlot(view, nil)
	writeJSON(w, view)
}

func (h *SessionHandler) writeDetail(w http.ResponseWriter, r *http.Request, status int, session *domain.CalcSession, userID uuid.UUID, op string) {
	views, err := h.sessionService.Views(r.Context(), session)
	if err != nil {
		writeError(w, h.logger, op, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(SessionDetailResponse{
		Session: newSessionResponse(session),
		Slots:   views,
		IsOwner: session.OwnerID == userID,
	})
}

// sessionParams reads the session id from the path and the caller from the
// request context.
func (h *SessionHandler) sessionParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return sessionID, userID, true
}

func slotPosition(w http.ResponseWriter, r *http.Request) (int, bool) {
	position, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || position < 0 {
		http.Error(w, "Invalid slot index", http.StatusBadRequest)
		return 0, false
	}
	return position, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
