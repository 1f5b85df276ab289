package service

import (
	"github.com/asterah/chaos-full-nightmare/internal/config"
	"github.com/asterah/chaos-full-nightmare/internal/repository"
	"github.com/asterah/chaos-full-nightmare/internal/scoring"
	"go.uber.org/zap"
)

type Services struct {
	Auth      *AuthService
	Combatant *CombatantService
	Session   *SessionService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, rules scoring.Rules, logger *zap.Logger) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, repos.Session, cfg),
		Combatant: NewCombatantService(repos.Combatant, cfg.CatalogFile),
		Session:   NewSessionService(repos, rules, logger),
	}
}
