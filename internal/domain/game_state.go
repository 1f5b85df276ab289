package domain

type ActionLogEntry struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

// GameState is one immutable snapshot of a combatant's card set. Snapshots
// never share slice backing arrays with each other.
type GameState struct {
	Cards            []Card           `json:"cards"`
	RemovedCards     []Card           `json:"removedCards"`
	DuplicationCount int              `json:"duplicationCount"`
	ConversionCount  int              `json:"conversionCount"`
	NextID           int              `json:"nextId"`
	ActionLog        []ActionLogEntry `json:"actionLog"`
	NextLogID        int              `json:"nextLogId"`
}

// NewGameState builds the initial snapshot for a deck. The deck is deep
// copied so the catalog template is never mutated.
func NewGameState(deck []Card) GameState {
	nextID := 1
	for _, c := range deck {
		if c.ID >= nextID {
			nextID = c.ID + 1
		}
	}
	return GameState{
		Cards:        CloneCards(deck),
		RemovedCards: []Card{},
		NextID:       nextID,
		ActionLog:    []ActionLogEntry{},
		NextLogID:    1,
	}
}

// Clone returns a deep copy of the snapshot.
func (s GameState) Clone() GameState {
	s.Cards = CloneCards(s.Cards)
	s.RemovedCards = CloneCards(s.RemovedCards)
	s.ActionLog = append(make([]ActionLogEntry, 0, len(s.ActionLog)), s.ActionLog...)
	return s
}

// FindCard returns the index of the active card with the given id, or -1.
func (s GameState) FindCard(id int) int {
	for i, c := range s.Cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// CardIDs returns the set of active card ids.
func (s GameState) CardIDs() map[int]struct{} {
	ids := make(map[int]struct{}, len(s.Cards))
	for _, c := range s.Cards {
		ids[c.ID] = struct{}{}
	}
	return ids
}
