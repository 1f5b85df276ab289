package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asterah/chaos-full-nightmare/internal/catalog"
	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/repository"
	"gorm.io/gorm"
)

var ErrCombatantNotFound = errors.New("combatant not found")

type CombatantService struct {
	combatantRepo repository.CombatantRepository
	catalogFile   string
}

func NewCombatantService(combatantRepo repository.CombatantRepository, catalogFile string) *CombatantService {
	return &CombatantService{
		combatantRepo: combatantRepo,
		catalogFile:   catalogFile,
	}
}

func (s *CombatantService) GetAll(ctx context.Context) ([]*domain.Combatant, error) {
	return s.combatantRepo.GetAll(ctx)
}

func (s *CombatantService) Get(ctx context.Context, id string) (*domain.Combatant, error) {
	combatant, err := s.combatantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCombatantNotFound
		}
		return nil, err
	}
	return combatant, nil
}

// Sync loads the built-in roster plus the configured catalog file and
// upserts every combatant. It returns how many were written.
func (s *CombatantService) Sync(ctx context.Context) (int, error) {
	combatants, err := catalog.Load(s.catalogFile)
	if err != nil {
		return 0, fmt.Errorf("failed to load catalog: %w", err)
	}

	now := time.Now()
	for _, c := range combatants {
		c.LastSyncedAt = now
	}

	if err := s.combatantRepo.UpsertMany(ctx, combatants); err != nil {
		return 0, fmt.Errorf("failed to upsert combatants: %w", err)
	}
	return len(combatants), nil
}
