package handlers

import (
	"errors"
	"net/http"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/logging"
	"github.com/asterah/chaos-full-nightmare/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CombatantHandler struct {
	combatantService *service.CombatantService
	logger           *zap.Logger
}

func NewCombatantHandler(combatantService *service.CombatantService, logger *zap.Logger) *CombatantHandler {
	return &CombatantHandler{combatantService: combatantService, logger: logger}
}

type CombatantResponse struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Deck []domain.Card `json:"deck"`
}

type CombatantsResponse struct {
	Combatants []CombatantResponse `json:"combatants"`
}

type SyncResponse struct {
	Synced int `json:"synced"`
}

func newCombatantResponse(c *domain.Combatant) CombatantResponse {
	return CombatantResponse{
		ID:   c.ID,
		Name: c.Name,
		Deck: c.Cards(),
	}
}

func (h *CombatantHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	combatants, err := h.combatantService.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list combatants", logging.Op("combatant.GetAll"), zap.Error(err))
		http.Error(w, "Failed to get combatants", http.StatusInternalServerError)
		return
	}

	resp := CombatantsResponse{
		Combatants: make([]CombatantResponse, len(combatants)),
	}
	for i, c := range combatants {
		resp.Combatants[i] = newCombatantResponse(c)
	}

	writeJSON(w, resp)
}

func (h *CombatantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	combatant, err := h.combatantService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCombatantNotFound) {
			http.Error(w, "Combatant not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get combatant", logging.Op("combatant.Get"), zap.String("combatant_id", id), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, newCombatantResponse(combatant))
}

func (h *CombatantHandler) Sync(w http.ResponseWriter, r *http.Request) {
	count, err := h.combatantService.Sync(r.Context())
	if err != nil {
		h.logger.Error("failed to sync combatants", logging.Op("combatant.Sync"), zap.Error(err))
		http.Error(w, "Failed to sync combatants", http.StatusInternalServerError)
		return
	}

	writeJSON(w, SyncResponse{Synced: count})
}
