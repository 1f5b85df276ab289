package domain

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultCombatantID is the placeholder combatant every new slot starts with.
const DefaultCombatantID = "default"

type Combatant struct {
	ID           string                    `json:"id" gorm:"primaryKey"` // e.g., "mika"
	Name         string                    `json:"name" gorm:"not null"`
	SortOrder    int                       `json:"-" gorm:"not null;default:0"`
	Deck         datatypes.JSONSlice[Card] `json:"deck"`
	LastSyncedAt time.Time                 `json:"lastSyncedAt"`
}

// Cards returns a deep copy of the deck template.
func (c *Combatant) Cards() []Card {
	return CloneCards(c.Deck)
}
