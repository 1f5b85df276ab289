package gormdb

import (
	"context"
	"strings"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type calcSessionRepository struct {
	db *gorm.DB
}

func NewCalcSessionRepository(db *gorm.DB) *calcSessionRepository {
	return &calcSessionRepository{db: db}
}

func orderedSlots(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the session and its slots in one transaction.
func (r *calcSessionRepository) Create(ctx context.Context, session *domain.CalcSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	for i := range session.Slots {
		if session.Slots[i].ID == uuid.Nil {
			session.Slots[i].ID = uuid.New()
		}
		session.Slots[i].SessionID = session.ID
	}
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *calcSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalcSession, error) {
	var session domain.CalcSession
	err := r.db.WithContext(ctx).
		Preload("Slots", orderedSlots).
		First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *calcSessionRepository) GetByShortCode(ctx context.Context, code string) (*domain.CalcSession, error) {
	var session domain.CalcSession
	err := r.db.WithContext(ctx).
		Preload("Slots", orderedSlots).
		First(&session, "short_code = ?", strings.ToUpper(code)).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *calcSessionRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*domain.CalcSession, error) {
	var sessions []*domain.CalcSession
	err := r.db.WithContext(ctx).
		Preload("Slots", orderedSlots).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *calcSessionRepository) UpdateTier(ctx context.Context, id uuid.UUID, tier int) error {
	res := r.db.WithContext(ctx).
		Model(&domain.CalcSession{}).
		Where("id = ?", id).
		Update("tier", tier)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *calcSessionRepository) Resize(ctx context.Context, id uuid.UUID, count int, added []domain.Slot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dropped []uuid.UUID
		err := tx.Model(&domain.Slot{}).
			Where("session_id = ? AND position >= ?", id, count).
			Pluck("id", &dropped).Error
		if err != nil {
			return err
		}

		if len(dropped) > 0 {
			if err := tx.Where("slot_id IN ?", dropped).Delete(&domain.SlotAction{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", dropped).Delete(&domain.Slot{}).Error; err != nil {
				return err
			}
		}

		if len(added) > 0 {
			for i := range added {
				if added[i].ID == uuid.Nil {
					added[i].ID = uuid.New()
				}
				added[i].SessionID = id
			}
			if err := tx.Create(&added).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&domain.CalcSession{}).Where("id = ?", id).Update("slot_count", count)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
