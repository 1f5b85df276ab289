package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/asterah/chaos-full-nightmare/internal/catalog"
	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func find(t *testing.T, combatants []*domain.Combatant, id string) *domain.Combatant {
	t.Helper()
	for _, c := range combatants {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("combatant %q not found", id)
	return nil
}

func TestBuiltin(t *testing.T) {
	combatants, err := catalog.Builtin()
	require.NoError(t, err)
	require.Len(t, combatants, 24)

	assert.Equal(t, domain.DefaultCombatantID, combatants[0].ID)
	for i, c := range combatants {
		assert.Equal(t, i, c.SortOrder)
		assert.Len(t, c.Deck, 8, c.ID)
	}
}

func TestBuiltin_DefaultDeck(t *testing.T) {
	combatants, err := catalog.Builtin()
	require.NoError(t, err)

	deck := find(t, combatants, domain.DefaultCombatantID).Cards()
	counts := map[domain.CardType]int{}
	ultimates := 0
	for _, card := range deck {
		counts[card.Type]++
		assert.Equal(t, card.Type, card.OriginalType)
		assert.Equal(t, domain.CardStateNone, card.State)
		if card.IsUltimate {
			ultimates++
		}
	}
	assert.Equal(t, 3, counts[domain.CardTypeBasic])
	assert.Equal(t, 5, counts[domain.CardTypeUnique])
	assert.Equal(t, 1, ultimates)
}

func TestBuiltin_MikaUltimateIsUnique(t *testing.T) {
	combatants, err := catalog.Builtin()
	require.NoError(t, err)

	deck := find(t, combatants, "mika").Cards()
	deluge := deck[7]
	assert.Equal(t, "Deluge", deluge.Name)
	assert.True(t, deluge.IsUltimate)
	assert.True(t, deluge.HasEffect(domain.CardEffectUnique))
	assert.False(t, deluge.Duplicable())
}

func TestBuiltin_QuotedNames(t *testing.T) {
	combatants, err := catalog.Builtin()
	require.NoError(t, err)

	assert.Equal(t, "Attack, My Minions", find(t, combatants, "orlea").Deck[0].Name)
	assert.Equal(t, "Dark Mist Sword: First Form", find(t, combatants, "rin").Deck[0].Name)
}

func TestCombatantCards_DeepCopy(t *testing.T) {
	combatants, err := catalog.Builtin()
	require.NoError(t, err)
	mika := find(t, combatants, "mika")

	cards := mika.Cards()
	cards[7].Effects[0] = domain.CardEffectRemove
	cards[0].Name = "changed"

	assert.Equal(t, domain.CardEffectUnique, mika.Deck[7].Effects[0])
	assert.Equal(t, "Water Arrow", mika.Deck[0].Name)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "missing id",
			yaml:    "combatants:\n  - name: Nobody\n    deck: [{id: 1, type: basic}]\n",
			wantErr: catalog.ErrMissingCombatantID,
		},
		{
			name:    "duplicate combatant",
			yaml:    "combatants:\n  - id: a\n    deck: [{id: 1, type: basic}]\n  - id: a\n    deck: [{id: 1, type: basic}]\n",
			wantErr: catalog.ErrDuplicateCombatant,
		},
		{
			name:    "empty deck",
			yaml:    "combatants:\n  - id: a\n    deck: []\n",
			wantErr: catalog.ErrEmptyDeck,
		},
		{
			name:    "duplicate card id",
			yaml:    "combatants:\n  - id: a\n    deck: [{id: 1, type: basic}, {id: 1, type: unique}]\n",
			wantErr: catalog.ErrInvalidCardID,
		},
		{
			name:    "zero card id",
			yaml:    "combatants:\n  - id: a\n    deck: [{id: 0, type: basic}]\n",
			wantErr: catalog.ErrInvalidCardID,
		},
		{
			name:    "unknown card type",
			yaml:    "combatants:\n  - id: a\n    deck: [{id: 1, type: legendary}]\n",
			wantErr: domain.ErrInvalidCardType,
		},
		{
			name:    "unknown card state",
			yaml:    "combatants:\n  - id: a\n    deck: [{id: 1, type: unique, state: ascended}]\n",
			wantErr: domain.ErrInvalidCardState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	combatants, err := catalog.Parse([]byte("combatants:\n  - id: solo\n    deck:\n      - {id: 3, type: monster, originalType: unique}\n"))
	require.NoError(t, err)
	require.Len(t, combatants, 1)

	c := combatants[0]
	assert.Equal(t, "solo", c.Name)
	assert.Equal(t, domain.CardStateNone, c.Deck[0].State)
	assert.Equal(t, domain.CardTypeUnique, c.Deck[0].OriginalType)
}

func TestLoad_LayersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "combatants:\n" +
		"  - id: mika\n    name: Mika (Alt)\n    deck: [{id: 1, type: basic, name: Splash}]\n" +
		"  - id: newcomer\n    name: Newcomer\n    deck: [{id: 1, type: unique, name: Debut}]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	builtin, err := catalog.Builtin()
	require.NoError(t, err)
	combatants, err := catalog.Load(path)
	require.NoError(t, err)

	require.Len(t, combatants, len(builtin)+1)
	mika := find(t, combatants, "mika")
	assert.Equal(t, "Mika (Alt)", mika.Name)
	assert.Equal(t, find(t, builtin, "mika").SortOrder, mika.SortOrder)
	assert.Len(t, mika.Deck, 1)

	newcomer := combatants[len(combatants)-1]
	assert.Equal(t, "newcomer", newcomer.ID)
	assert.Equal(t, len(builtin), newcomer.SortOrder)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
