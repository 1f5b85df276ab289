package service

import (
	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/engine"
	"github.com/asterah/chaos-full-nightmare/internal/scoring"
	"github.com/google/uuid"
)

type CombatantSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SlotView is everything a client needs to render one combatant slot.
type SlotView struct {
	SessionID         uuid.UUID               `json:"sessionId"`
	Position          int                     `json:"position"`
	Combatant         CombatantSummary        `json:"combatant"`
	State             domain.GameState        `json:"state"`
	Score             int                     `json:"score"`
	Breakdown         scoring.Breakdown       `json:"breakdown"`
	ScoreLimit        int                     `json:"scoreLimit"`
	OverLimit         bool                    `json:"overLimit"`
	HistoryLength     int                     `json:"historyLength"`
	CanUndo           bool                    `json:"canUndo"`
	CanReset          bool                    `json:"canReset"`
	FreeRemoveUsed    bool                    `json:"freeRemoveUsed"`
	FreeDuplicateUsed bool                    `json:"freeDuplicateUsed"`
	ActionLog         []domain.ActionLogEntry `json:"actionLog"`
}

func newSlotView(session *domain.CalcSession, slot *domain.Slot, combatant *domain.Combatant, h *engine.History) *SlotView {
	state := h.Current()
	score := h.Score()
	limit := session.ScoreLimit()

	// Newest entry first
	log := make([]domain.ActionLogEntry, len(state.ActionLog))
	for i, entry := range state.ActionLog {
		log[len(log)-1-i] = entry
	}

	return &SlotView{
		SessionID:         session.ID,
		Position:          slot.Position,
		Combatant:         CombatantSummary{ID: combatant.ID, Name: combatant.Name},
		State:             state,
		Score:             score,
		Breakdown:         h.Breakdown(),
		ScoreLimit:        limit,
		OverLimit:         score > limit,
		HistoryLength:     h.Len(),
		CanUndo:           h.CanUndo(),
		CanReset:          h.CanUndo(),
		FreeRemoveUsed:    len(state.RemovedCards) > 0,
		FreeDuplicateUsed: state.DuplicationCount > 0,
		ActionLog:         log,
	}
}
