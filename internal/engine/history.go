package engine

import (
	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/scoring"
)

// History is the append-only list of snapshots for one combatant. The first
// snapshot is the initial state; every later one was produced by exactly one
// action from its predecessor.
type History struct {
	rules     scoring.Rules
	snapshots []domain.GameState
	initial   scoring.IDSet
}

// New starts a history from a deck. The deck is deep copied.
func New(deck []domain.Card, rules scoring.Rules) *History {
	h := &History{rules: rules}
	h.Reset(deck)
	return h
}

// Reset replaces the whole history with a fresh initial snapshot.
func (h *History) Reset(deck []domain.Card) {
	initial := domain.NewGameState(deck)
	h.snapshots = []domain.GameState{initial}
	h.initial = scoring.NewIDSet(initial.Cards)
}

// Undo drops the last snapshot. It reports false when only the initial
// snapshot is left.
func (h *History) Undo() bool {
	if !h.CanUndo() {
		return false
	}
	h.snapshots = h.snapshots[:len(h.snapshots)-1]
	return true
}

func (h *History) CanUndo() bool {
	return len(h.snapshots) > 1
}

func (h *History) Len() int {
	return len(h.snapshots)
}

func (h *History) Rules() scoring.Rules {
	return h.rules
}

// Current returns a copy of the last snapshot.
func (h *History) Current() domain.GameState {
	return h.last().Clone()
}

// Snapshots returns copies of every snapshot, oldest first.
func (h *History) Snapshots() []domain.GameState {
	out := make([]domain.GameState, len(h.snapshots))
	for i, s := range h.snapshots {
		out[i] = s.Clone()
	}
	return out
}

// InitialCardIDs returns the ids of the cards in the first snapshot.
func (h *History) InitialCardIDs() scoring.IDSet {
	ids := make(scoring.IDSet, len(h.initial))
	for id := range h.initial {
		ids[id] = struct{}{}
	}
	return ids
}

func (h *History) Score() int {
	return h.rules.Score(h.last(), h.initial)
}

func (h *History) Breakdown() scoring.Breakdown {
	return h.rules.Evaluate(h.last(), h.initial)
}

func (h *History) last() domain.GameState {
	return h.snapshots[len(h.snapshots)-1]
}

// commit logs next against the current snapshot using the score delta and
// appends it.
func (h *History) commit(next domain.GameState, description string) domain.ActionLogEntry {
	points := h.rules.Score(next, h.initial) - h.rules.Score(h.last(), h.initial)
	return h.commitWithPoints(next, description, points)
}

func (h *History) commitWithPoints(next domain.GameState, description string, points int) domain.ActionLogEntry {
	prev := h.last()
	entry := domain.ActionLogEntry{
		ID:          prev.NextLogID,
		Description: description,
		Points:      points,
	}
	log := make([]domain.ActionLogEntry, 0, len(prev.ActionLog)+1)
	next.ActionLog = append(append(log, prev.ActionLog...), entry)
	next.NextLogID = prev.NextLogID + 1

	h.snapshots = append(h.snapshots, next)
	return entry
}
