package gormdb

import (
	"context"
	"errors"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type slotActionRepository struct {
	db *gorm.DB
}

func NewSlotActionRepository(db *gorm.DB) *slotActionRepository {
	return &slotActionRepository{db: db}
}

// Append stores the action after the slot's current last one. Seq is
// assigned here.
func (r *slotActionRepository) Append(ctx context.Context, action *domain.SlotAction) error {
	if action.ID == uuid.Nil {
		action.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		err := tx.Model(&domain.SlotAction{}).
			Where("slot_id = ?", action.SlotID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&last).Error
		if err != nil {
			return err
		}
		action.Seq = last + 1
		return tx.Create(action).Error
	})
}

func (r *slotActionRepository) GetBySlotID(ctx context.Context, slotID uuid.UUID) ([]*domain.SlotAction, error) {
	var actions []*domain.SlotAction
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Order("seq ASC").
		Find(&actions).Error
	if err != nil {
		return nil, err
	}
	return actions, nil
}

// DeleteLast removes the newest action of the slot. It reports false when
// the slot has none.
func (r *slotActionRepository) DeleteLast(ctx context.Context, slotID uuid.UUID) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last domain.SlotAction
		err := tx.Where("slot_id = ?", slotID).Order("seq DESC").First(&last).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&domain.SlotAction{}, "id = ?", last.ID).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func (r *slotActionRepository) DeleteBySlotID(ctx context.Context, slotID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("slot_id = ?", slotID).Delete(&domain.SlotAction{}).Error
}
