package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/engine"
	"github.com/asterah/chaos-full-nightmare/internal/repository"
	"github.com/asterah/chaos-full-nightmare/internal/scoring"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSlotNotFound     = errors.New("slot not found")
	ErrNotSessionOwner  = errors.New("only the session owner can change it")
	ErrHistoryDiverged  = errors.New("stored slot history no longer replays")
	ErrInvalidTier      = domain.ErrInvalidTier
	ErrInvalidSlotCount = domain.ErrInvalidSlotCount
)

type SessionService struct {
	sessionRepo   repository.CalcSessionRepository
	slotRepo      repository.SlotRepository
	actionRepo    repository.SlotActionRepository
	combatantRepo repository.CombatantRepository
	rules         scoring.Rules
	logger        *zap.Logger

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sessionLock
}

// sessionLock is dropped from the map once nobody holds or waits for it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessionService(repos *repository.Repositories, rules scoring.Rules, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessionRepo:   repos.CalcSession,
		slotRepo:      repos.Slot,
		actionRepo:    repos.SlotAction,
		combatantRepo: repos.Combatant,
		rules:         rules,
		logger:        logger,
		locks:         make(map[uuid.UUID]*sessionLock),
	}
}

func (s *SessionService) Rules() scoring.Rules {
	return s.rules
}

// lock serialises mutations of one session and returns the unlock func.
func (s *SessionService) lock(id uuid.UUID) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}
}

type CreateSessionInput struct {
	OwnerID   uuid.UUID
	Tier      int
	SlotCount int
}

func (s *SessionService) Create(ctx context.Context, input CreateSessionInput) (*domain.CalcSession, error) {
	if input.Tier == 0 {
		input.Tier = domain.MinTier
	}
	if input.SlotCount == 0 {
		input.SlotCount = domain.MinSlotCount
	}
	if err := domain.ValidateTier(input.Tier); err != nil {
		return nil, err
	}
	if err := domain.ValidateSlotCount(input.SlotCount); err != nil {
		return nil, err
	}
	seed, err := s.getCombatant(ctx, domain.DefaultCombatantID)
	if err != nil {
		return nil, err
	}

	session := &domain.CalcSession{
		ID:        uuid.New(),
		ShortCode: generateShortCode(),
		OwnerID:   input.OwnerID,
		Tier:      input.Tier,
		SlotCount: input.SlotCount,
		Slots:     newSlots(0, input.SlotCount, seed.Cards()),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("session created",
		zap.String("session_id", session.ID.String()),
		zap.String("short_code", session.ShortCode),
		zap.Int("slots", session.SlotCount),
	)
	return session, nil
}

// Get looks a session up by uuid or, failing that, by short code.
func (s *SessionService) Get(ctx context.Context, idOrCode string) (*domain.CalcSession, error) {
	var (
		session *domain.CalcSession
		err     error
	)
	if id, parseErr := uuid.Parse(idOrCode); parseErr == nil {
		session, err = s.sessionRepo.GetByID(ctx, id)
	} else {
		session, err = s.sessionRepo.GetByShortCode(ctx, strings.ToUpper(idOrCode))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *SessionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalcSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *SessionService) GetUserSessions(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*domain.CalcSession, error) {
	return s.sessionRepo.GetByOwnerID(ctx, ownerID, limit, offset)
}

// owned loads a session and checks that userID owns it.
func (s *SessionService) owned(ctx context.Context, sessionID, userID uuid.UUID) (*domain.CalcSession, error) {
	session, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.OwnerID != userID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

func (s *SessionService) SetTier(ctx context.Context, sessionID, userID uuid.UUID, tier int) (*domain.CalcSession, error) {
	if err := domain.ValidateTier(tier); err != nil {
		return nil, err
	}

	defer s.lock(sessionID)()

	if _, err := s.owned(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.UpdateTier(ctx, sessionID, tier); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, sessionID)
}

// SetSlotCount grows or shrinks the session. New slots start on the default
// combatant; dropped slots lose their history.
func (s *SessionService) SetSlotCount(ctx context.Context, sessionID, userID uuid.UUID, count int) (*domain.CalcSession, error) {
	if err := domain.ValidateSlotCount(count); err != nil {
		return nil, err
	}

	defer s.lock(sessionID)()

	session, err := s.owned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	var added []domain.Slot
	if count > len(session.Slots) {
		seed, err := s.getCombatant(ctx, domain.DefaultCombatantID)
		if err != nil {
			return nil, err
		}
		added = newSlots(len(session.Slots), count, seed.Cards())
	}
	if err := s.sessionRepo.Resize(ctx, sessionID, count, added); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, sessionID)
}

// ChangeCharacter puts another combatant in the slot and starts its history
// over from the new deck.
func (s *SessionService) ChangeCharacter(ctx context.Context, sessionID, userID uuid.UUID, position int, combatantID string) (*SlotView, error) {
	defer s.lock(sessionID)()

	session, err := s.owned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	slot, err := findSlot(session, position)
	if err != nil {
		return nil, err
	}
	combatant, err := s.getCombatant(ctx, combatantID)
	if err != nil {
		return nil, err
	}

	deck := combatant.Cards()
	if err := s.slotRepo.ReplaceCombatant(ctx, slot.ID, combatant.ID, deck); err != nil {
		return nil, err
	}
	slot.CombatantID = combatant.ID
	slot.SeedDeck = deck

	return newSlotView(session, slot, combatant, engine.New(deck, s.rules)), nil
}

// Apply runs one command against the slot's history. The command is stored
// only when the engine accepted it.
func (s *SessionService) Apply(ctx context.Context, sessionID, userID uuid.UUID, position int, cmd engine.Command) (*SlotView, domain.ActionLogEntry, error) {
	defer s.lock(sessionID)()

	session, err := s.owned(ctx, sessionID, userID)
	if err != nil {
		return nil, domain.ActionLogEntry{}, err
	}
	slot, err := findSlot(session, position)
	if err != nil {
		return nil, domain.ActionLogEntry{}, err
	}
	h, combatant, err := s.rebuild(ctx, slot)
	if err != nil {
		return nil, domain.ActionLogEntry{}, err
	}

	entry, err := h.Apply(cmd)
	if err != nil {
		return nil, domain.ActionLogEntry{}, err
	}

	encoded, err := json.Marshal(cmd)
	if err != nil {
		return nil, domain.ActionLogEntry{}, fmt.Errorf("encode command: %w", err)
	}
	action := &domain.SlotAction{
		SlotID:      slot.ID,
		Command:     datatypes.JSON(encoded),
		Description: entry.Description,
		Points:      entry.Points,
	}
	if err := s.actionRepo.Append(ctx, action); err != nil {
		return nil, domain.ActionLogEntry{}, err
	}

	return newSlotView(session, slot, combatant, h), entry, nil
}

// Undo drops the slot's newest action. With nothing to undo it returns the
// unchanged view.
func (s *SessionService) Undo(ctx context.Context, sessionID, userID uuid.UUID, position int) (*SlotView, error) {
	defer s.lock(sessionID)()

	session, err := s.owned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	slot, err := findSlot(session, position)
	if err != nil {
		return nil, err
	}
	h, combatant, err := s.rebuild(ctx, slot)
	if err != nil {
		return nil, err
	}

	if h.CanUndo() {
		if _, err := s.actionRepo.DeleteLast(ctx, slot.ID); err != nil {
			return nil, err
		}
		h.Undo()
	}

	return newSlotView(session, slot, combatant, h), nil
}

func (s *SessionService) Reset(ctx context.Context, sessionID, userID uuid.UUID, position int) (*SlotView, error) {
	defer s.lock(sessionID)()

	session, err := s.owned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	slot, err := findSlot(session, position)
	if err != nil {
		return nil, err
	}
	combatant, err := s.getCombatant(ctx, slot.CombatantID)
	if err != nil {
		return nil, err
	}

	// A reset also picks up the combatant's current catalog deck.
	deck := combatant.Cards()
	if err := s.slotRepo.ReplaceCombatant(ctx, slot.ID, combatant.ID, deck); err != nil {
		return nil, err
	}
	slot.SeedDeck = deck

	return newSlotView(session, slot, combatant, engine.New(deck, s.rules)), nil
}

// View renders one slot. It does not require ownership.
func (s *SessionService) View(ctx context.Context, sessionID uuid.UUID, position int) (*SlotView, error) {
	session, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	slot, err := findSlot(session, position)
	if err != nil {
		return nil, err
	}
	h, combatant, err := s.rebuild(ctx, slot)
	if err != nil {
		return nil, err
	}
	return newSlotView(session, slot, combatant, h), nil
}

// Views renders every slot of the session in position order.
func (s *SessionService) Views(ctx context.Context, session *domain.CalcSession) ([]*SlotView, error) {
	views := make([]*SlotView, 0, len(session.Slots))
	for i := range session.Slots {
		slot := &session.Slots[i]
		h, combatant, err := s.rebuild(ctx, slot)
		if err != nil {
			return nil, err
		}
		views = append(views, newSlotView(session, slot, combatant, h))
	}
	return views, nil
}

// rebuild replays the slot's stored commands over its seed deck. Slots
// stored without one fall back to the combatant's catalog deck.
func (s *SessionService) rebuild(ctx context.Context, slot *domain.Slot) (*engine.History, *domain.Combatant, error) {
	combatant, err := s.getCombatant(ctx, slot.CombatantID)
	if err != nil {
		return nil, nil, err
	}

	actions, err := s.actionRepo.GetBySlotID(ctx, slot.ID)
	if err != nil {
		return nil, nil, err
	}

	cmds := make([]engine.Command, len(actions))
	for i, action := range actions {
		if err := json.Unmarshal(action.Command, &cmds[i]); err != nil {
			return nil, nil, fmt.Errorf("decode action %d of slot %s: %w", action.Seq, slot.ID, err)
		}
	}

	seed := domain.CloneCards(slot.SeedDeck)
	if len(seed) == 0 {
		seed = combatant.Cards()
	}

	h, err := engine.Replay(seed, s.rules, cmds)
	if err != nil {
		s.logger.Error("slot history does not replay",
			zap.String("slot_id", slot.ID.String()),
			zap.String("combatant_id", combatant.ID),
			zap.Error(err),
		)
		// The engine error is not wrapped; a missing card here is a
		// storage fault, not a bad request.
		return nil, nil, fmt.Errorf("slot %s: %w: %v", slot.ID, ErrHistoryDiverged, err)
	}
	return h, combatant, nil
}

func (s *SessionService) getCombatant(ctx context.Context, id string) (*domain.Combatant, error) {
	combatant, err := s.combatantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCombatantNotFound
		}
		return nil, err
	}
	return combatant, nil
}

func findSlot(session *domain.CalcSession, position int) (*domain.Slot, error) {
	for i := range session.Slots {
		if session.Slots[i].Position == position {
			return &session.Slots[i], nil
		}
	}
	return nil, ErrSlotNotFound
}

func newSlots(from, to int, seed []domain.Card) []domain.Slot {
	slots := make([]domain.Slot, 0, to-from)
	for pos := from; pos < to; pos++ {
		slots = append(slots, domain.Slot{
			ID:          uuid.New(),
			Position:    pos,
			CombatantID: domain.DefaultCombatantID,
			SeedDeck:    domain.CloneCards(seed),
		})
	}
	return slots
}

func generateShortCode() string {
	bytes := make([]byte, 3)
	rand.Read(bytes)
	return strings.ToUpper(hex.EncodeToString(bytes))
}
