package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	MinTier      = 1
	MaxTier      = 20
	MinSlotCount = 1
	MaxSlotCount = 3
)

// ScoreLimit is the display threshold for a tier. The engine never clamps
// against it.
func ScoreLimit(tier int) int {
	return 30 + (tier-1)*10
}

// CalcSession is one calculator workspace: a tier and up to three
// combatant slots.
type CalcSession struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ShortCode string    `json:"shortCode" gorm:"uniqueIndex;not null"`
	OwnerID   uuid.UUID `json:"ownerId" gorm:"type:uuid;index;not null"`
	Tier      int       `json:"tier" gorm:"not null;default:1"`
	SlotCount int       `json:"slotCount" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Slots []Slot `json:"slots,omitempty" gorm:"foreignKey:SessionID"`
}

func (s *CalcSession) ScoreLimit() int {
	return ScoreLimit(s.Tier)
}

// Slot holds one combatant of a session. SeedDeck is the deck the slot's
// history starts from, copied when the combatant was chosen, so later
// catalog syncs do not rewrite stored histories.
type Slot struct {
	ID          uuid.UUID                 `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID   uuid.UUID                 `json:"sessionId" gorm:"type:uuid;uniqueIndex:idx_slot_position;not null"`
	Position    int                       `json:"position" gorm:"uniqueIndex:idx_slot_position;not null"`
	CombatantID string                    `json:"combatantId" gorm:"not null"`
	SeedDeck    datatypes.JSONSlice[Card] `json:"-"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

// SlotAction is one recorded intent in a slot's history. Replaying the
// actions of a slot in Seq order over its combatant's deck rebuilds the
// slot's snapshot history.
type SlotAction struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	SlotID      uuid.UUID      `json:"slotId" gorm:"type:uuid;uniqueIndex:idx_slot_action_seq;not null"`
	Seq         int            `json:"seq" gorm:"uniqueIndex:idx_slot_action_seq;not null"`
	Command     datatypes.JSON `json:"command" gorm:"not null"`
	Description string         `json:"description"`
	Points      int            `json:"points"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func ValidateTier(tier int) error {
	if tier < MinTier || tier > MaxTier {
		return ErrInvalidTier
	}
	return nil
}

func ValidateSlotCount(count int) error {
	if count < MinSlotCount || count > MaxSlotCount {
		return ErrInvalidSlotCount
	}
	return nil
}
