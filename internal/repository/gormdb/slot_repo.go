package gormdb

import (
	"context"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type slotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *slotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) GetByPosition(ctx context.Context, sessionID uuid.UUID, position int) (*domain.Slot, error) {
	var slot domain.Slot
	err := r.db.WithContext(ctx).
		First(&slot, "session_id = ? AND position = ?", sessionID, position).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) ReplaceCombatant(ctx context.Context, slotID uuid.UUID, combatantID string, deck []domain.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Slot{}).
			Where("id = ?", slotID).
			Updates(map[string]interface{}{
				"combatant_id": combatantID,
				"seed_deck":    datatypes.JSONSlice[domain.Card](domain.CloneCards(deck)),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("slot_id = ?", slotID).Delete(&domain.SlotAction{}).Error
	})
}
