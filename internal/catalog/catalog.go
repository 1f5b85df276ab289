// Package catalog loads combatant decks from YAML. The built-in roster is
// embedded in the binary; operators can layer a file on top of it.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed combatants.yaml
var builtinYAML []byte

var (
	ErrMissingCombatantID = errors.New("combatant id is required")
	ErrDuplicateCombatant = errors.New("duplicate combatant id")
	ErrEmptyDeck          = errors.New("combatant deck is empty")
	ErrInvalidCardID      = errors.New("card ids must be positive and unique within a deck")
)

type catalogFile struct {
	Combatants []combatantEntry `yaml:"combatants"`
}

type combatantEntry struct {
	ID   string        `yaml:"id"`
	Name string        `yaml:"name"`
	Deck []domain.Card `yaml:"deck"`
}

// Builtin returns the embedded roster.
func Builtin() ([]*domain.Combatant, error) {
	combatants, err := Parse(builtinYAML)
	if err != nil {
		return nil, fmt.Errorf("builtin catalog: %w", err)
	}
	return combatants, nil
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) ([]*domain.Combatant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	combatants, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return combatants, nil
}

// Parse decodes and validates a catalog document. Cards without a state get
// CardStateNone and cards without an original type get their current type.
func Parse(data []byte) ([]*domain.Combatant, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[string]bool, len(f.Combatants))
	combatants := make([]*domain.Combatant, 0, len(f.Combatants))
	for i, entry := range f.Combatants {
		if entry.ID == "" {
			return nil, fmt.Errorf("combatant #%d: %w", i, ErrMissingCombatantID)
		}
		if seen[entry.ID] {
			return nil, fmt.Errorf("%s: %w", entry.ID, ErrDuplicateCombatant)
		}
		seen[entry.ID] = true

		deck, err := normalizeDeck(entry.Deck)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.ID, err)
		}

		name := entry.Name
		if name == "" {
			name = entry.ID
		}
		combatants = append(combatants, &domain.Combatant{
			ID:        entry.ID,
			Name:      name,
			SortOrder: i,
			Deck:      deck,
		})
	}
	return combatants, nil
}

func normalizeDeck(cards []domain.Card) ([]domain.Card, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}

	ids := make(map[int]bool, len(cards))
	deck := make([]domain.Card, len(cards))
	for i, card := range cards {
		if card.ID <= 0 || ids[card.ID] {
			return nil, fmt.Errorf("card %d: %w", card.ID, ErrInvalidCardID)
		}
		ids[card.ID] = true

		if card.State == "" {
			card.State = domain.CardStateNone
		}
		if card.OriginalType == "" {
			card.OriginalType = card.Type
		}
		if !card.Type.Valid() || !card.OriginalType.Valid() {
			return nil, fmt.Errorf("card %d: %w", card.ID, domain.ErrInvalidCardType)
		}
		if !card.State.Valid() {
			return nil, fmt.Errorf("card %d: %w", card.ID, domain.ErrInvalidCardState)
		}
		deck[i] = card.Clone()
	}
	return deck, nil
}

// Merge layers overrides on top of base. A combatant with a known id
// replaces the base entry in place; new ids are appended in order.
func Merge(base, overrides []*domain.Combatant) []*domain.Combatant {
	merged := make([]*domain.Combatant, len(base))
	copy(merged, base)

	index := make(map[string]int, len(merged))
	for i, c := range merged {
		index[c.ID] = i
	}
	for _, c := range overrides {
		if i, ok := index[c.ID]; ok {
			c.SortOrder = merged[i].SortOrder
			merged[i] = c
			continue
		}
		c.SortOrder = len(merged)
		index[c.ID] = len(merged)
		merged = append(merged, c)
	}
	return merged
}

// Load returns the built-in roster with the optional file layered on top.
func Load(path string) ([]*domain.Combatant, error) {
	combatants, err := Builtin()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return combatants, nil
	}
	extra, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Merge(combatants, extra), nil
}
