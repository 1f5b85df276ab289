package handlers

import (
	"net/http"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/scoring"
)

type RulesHandler struct {
	rules scoring.Rules
}

func NewRulesHandler(rules scoring.Rules) *RulesHandler {
	return &RulesHandler{rules: rules}
}

type RulesResponse struct {
	scoring.Rules
	MinTier      int `json:"minTier"`
	MaxTier      int `json:"maxTier"`
	MaxSlotCount int `json:"maxSlotCount"`
}

func (h *RulesHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, RulesResponse{
		Rules:        h.rules,
		MinTier:      domain.MinTier,
		MaxTier:      domain.MaxTier,
		MaxSlotCount: domain.MaxSlotCount,
	})
}
