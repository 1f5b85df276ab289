package repository

import (
	"context"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type CombatantRepository interface {
	UpsertMany(ctx context.Context, combatants []*domain.Combatant) error
	GetAll(ctx context.Context) ([]*domain.Combatant, error)
	GetByID(ctx context.Context, id string) (*domain.Combatant, error)
}

// CalcSessionRepository stores calculator sessions. Reads preload the
// session's slots ordered by position.
type CalcSessionRepository interface {
	Create(ctx context.Context, session *domain.CalcSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CalcSession, error)
	GetByShortCode(ctx context.Context, code string) (*domain.CalcSession, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*domain.CalcSession, error)
	UpdateTier(ctx context.Context, id uuid.UUID, tier int) error
	// Resize drops the slots at or past count together with their actions,
	// inserts added and records the new slot count.
	Resize(ctx context.Context, id uuid.UUID, count int, added []domain.Slot) error
}

type SlotRepository interface {
	GetByPosition(ctx context.Context, sessionID uuid.UUID, position int) (*domain.Slot, error)
	// ReplaceCombatant switches the slot's combatant, stores deck as its
	// new seed deck and clears its actions.
	ReplaceCombatant(ctx context.Context, slotID uuid.UUID, combatantID string, deck []domain.Card) error
}

type SlotActionRepository interface {
	Append(ctx context.Context, action *domain.SlotAction) error
	GetBySlotID(ctx context.Context, slotID uuid.UUID) ([]*domain.SlotAction, error)
	DeleteLast(ctx context.Context, slotID uuid.UUID) (bool, error)
	DeleteBySlotID(ctx context.Context, slotID uuid.UUID) error
}

type Repositories struct {
	User        UserRepository
	Session     SessionRepository
	Combatant   CombatantRepository
	CalcSession CalcSessionRepository
	Slot        SlotRepository
	SlotAction  SlotActionRepository
}
