package gormdb

import (
	"context"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type combatantRepository struct {
	db *gorm.DB
}

func NewCombatantRepository(db *gorm.DB) *combatantRepository {
	return &combatantRepository{db: db}
}

func (r *combatantRepository) UpsertMany(ctx context.Context, combatants []*domain.Combatant) error {
	if len(combatants) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(combatants).Error
}

func (r *combatantRepository) GetAll(ctx context.Context) ([]*domain.Combatant, error) {
	var combatants []*domain.Combatant
	err := r.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&combatants).Error
	if err != nil {
		return nil, err
	}
	return combatants, nil
}

func (r *combatantRepository) GetByID(ctx context.Context, id string) (*domain.Combatant, error) {
	var combatant domain.Combatant
	err := r.db.WithContext(ctx).First(&combatant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &combatant, nil
}
