package engine_test

import (
	"testing"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/engine"
	"github.com/asterah/chaos-full-nightmare/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultDeck() []domain.Card {
	mk := func(id int, t domain.CardType, name string) domain.Card {
		return domain.Card{ID: id, Type: t, OriginalType: t, State: domain.CardStateNone, Name: name}
	}
	ultimate := mk(8, domain.CardTypeUnique, "Ultimate Card")
	ultimate.IsUltimate = true
	return []domain.Card{
		mk(1, domain.CardTypeBasic, "Basic Card"),
		mk(2, domain.CardTypeBasic, "Basic Card"),
		mk(3, domain.CardTypeBasic, "Basic Card"),
		mk(4, domain.CardTypeUnique, "Unique Card"),
		mk(5, domain.CardTypeUnique, "Unique Card"),
		mk(6, domain.CardTypeUnique, "Unique Card"),
		mk(7, domain.CardTypeUnique, "Unique Card"),
		ultimate,
	}
}

func newHistory(t *testing.T) *engine.History {
	t.Helper()
	h := engine.New(defaultDeck(), scoring.DefaultRules())
	require.Equal(t, 1, h.Len())
	require.Equal(t, 0, h.Score())
	return h
}

func lastLog(t *testing.T, h *engine.History) domain.ActionLogEntry {
	t.Helper()
	log := h.Current().ActionLog
	require.NotEmpty(t, log)
	return log[len(log)-1]
}

func TestNew_InitialState(t *testing.T) {
	deck := defaultDeck()
	h := engine.New(deck, scoring.DefaultRules())

	state := h.Current()
	assert.Len(t, state.Cards, 8)
	assert.Empty(t, state.RemovedCards)
	assert.Empty(t, state.ActionLog)
	assert.Equal(t, 9, state.NextID)
	assert.Equal(t, 1, state.NextLogID)
	assert.Zero(t, state.DuplicationCount)
	assert.Zero(t, state.ConversionCount)
	assert.False(t, h.CanUndo())

	// The deck template must not be shared with the history.
	deck[0].Name = "mutated"
	assert.Equal(t, "Basic Card", h.Current().Cards[0].Name)
}

func TestNew_EmptyDeck(t *testing.T) {
	h := engine.New(nil, scoring.DefaultRules())
	assert.Equal(t, 1, h.Current().NextID)
	assert.NotNil(t, h.Current().Cards)
}

func TestHistory_AddMonsterScenario(t *testing.T) {
	h := newHistory(t)
	rules := h.Rules()

	entry, err := h.AddCard(domain.CardTypeMonster)
	require.NoError(t, err)

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, rules.MonsterCard, h.Score())
	assert.Equal(t, "Add Monster Card", entry.Description)
	assert.Equal(t, rules.MonsterCard, entry.Points)
	assert.Equal(t, 1, entry.ID)

	added := h.Current().Cards[8]
	assert.Equal(t, 9, added.ID)
	assert.Equal(t, domain.CardTypeMonster, added.Type)
	assert.Equal(t, domain.CardTypeMonster, added.OriginalType)
	assert.Equal(t, domain.CardStateNone, added.State)
	assert.Equal(t, "Monster Card", added.Name)
}

func TestHistory_AddCardRejectsUnknownType(t *testing.T) {
	h := newHistory(t)

	_, err := h.AddCard(domain.CardType("legendary"))
	assert.ErrorIs(t, err, domain.ErrInvalidCardType)
	assert.Equal(t, 1, h.Len())
}

func TestHistory_DuplicateLadderEscalation(t *testing.T) {
	h := newHistory(t)
	rules := h.Rules()

	first, err := h.DuplicateCard(4)
	require.NoError(t, err)
	second, err := h.DuplicateCard(5)
	require.NoError(t, err)

	assert.Equal(t, rules.DuplicationLadder.Cost(0), first.Points)
	assert.Equal(t, rules.DuplicationLadder.Cost(1), second.Points)
	assert.Equal(t, 2, h.Current().DuplicationCount)
	assert.Equal(t, "Duplicate Unique Card", first.Description)
}

func TestHistory_DuplicateSameCardTwiceEscalates(t *testing.T) {
	h := newHistory(t)
	rules := h.Rules()

	first, err := h.DuplicateCard(4)
	require.NoError(t, err)
	second, err := h.DuplicateCard(4)
	require.NoError(t, err)

	assert.Equal(t, rules.DuplicationLadder.Cost(0), first.Points)
	assert.Equal(t, rules.DuplicationLadder.Cost(1), second.Points)
}

func TestHistory_DuplicateCopiesSource(t *testing.T) {
	h := newHistory(t)

	_, err := h.UpdateCard(domain.Card{ID: 4, Type: domain.CardTypeUnique, State: domain.CardStateDivineEpiphany, Name: "Unique Card"})
	require.NoError(t, err)
	_, err = h.DuplicateCard(8)
	require.NoError(t, err)
	entry, err := h.DuplicateCard(4)
	require.NoError(t, err)
	assert.Equal(t, "Duplicate Divine Epiphany Unique Card", entry.Description)

	cards := h.Current().Cards
	ultimateCopy := cards[8]
	assert.Equal(t, 9, ultimateCopy.ID)
	assert.False(t, ultimateCopy.IsUltimate)
	assert.True(t, ultimateCopy.IsDuplicate)
	assert.Equal(t, domain.CardStateNone, ultimateCopy.State)

	epiphanyCopy := cards[9]
	assert.Equal(t, 10, epiphanyCopy.ID)
	assert.Equal(t, domain.CardStateNone, epiphanyCopy.State)
}

func TestHistory_DuplicateUniqueEffectIsPermitted(t *testing.T) {
	deck := defaultDeck()
	deck[7].Effects = []domain.CardEffect{domain.CardEffectUnique}
	h := engine.New(deck, scoring.DefaultRules())

	_, err := h.DuplicateCard(8)
	require.NoError(t, err)
	dup := h.Current().Cards[8]
	assert.True(t, dup.HasEffect(domain.CardEffectUnique))
	assert.False(t, dup.Duplicable())
}

func TestHistory_RemovalThenBasicBonus(t *testing.T) {
	h := newHistory(t)
	rules := h.Rules()

	first, err := h.RemoveCard(1)
	require.NoError(t, err)
	assert.Equal(t, rules.RemovalLadder.Cost(0)+rules.BasicRemovalBonus, first.Points)
	assert.Equal(t, "Remove Basic Card", first.Description)

	second, err := h.RemoveCard(4)
	require.NoError(t, err)
	assert.Equal(t, rules.RemovalLadder.Cost(1), second.Points)

	state := h.Current()
	assert.Len(t, state.Cards, 6)
	require.Len(t, state.RemovedCards, 2)
	assert.Equal(t, 1, state.RemovedCards[0].ID)
	assert.Equal(t, 4, state.RemovedCards[1].ID)
}

func TestHistory_RemoveKeepsStateAtRemoval(t *testing.T) {
	h := newHistory(t)

	_, err := h.UpdateCard(domain.Card{ID: 5, Type: domain.CardTypeUnique, State: domain.CardStateDivineEpiphany, Name: "Unique Card"})
	require.NoError(t, err)
	entry, err := h.RemoveCard(5)
	require.NoError(t, err)

	assert.Equal(t, "Remove Divine Epiphany Unique Card", entry.Description)
	assert.Equal(t, domain.CardStateDivineEpiphany, h.Current().RemovedCards[0].State)
	assert.Equal(t, -h.Rules().DivineEpiphanyBonus+h.Rules().RemovalLadder.Cost(0), entry.Points)
}

func TestHistory_ConvertScoresNeutralOnce(t *testing.T) {
	h := newHistory(t)
	rules := h.Rules()

	entry, err := h.ConvertCard(4)
	require.NoError(t, err)
	assert.Equal(t, "Convert Unique Card to Neutral", entry.Description)
	assert.Equal(t, rules.NeutralCard+rules.ConversionCost, entry.Points)

	converted := h.Current().Cards[3]
	assert.Equal(t, domain.CardTypeNeutral, converted.Type)
	assert.Equal(t, domain.CardTypeUnique, converted.OriginalType)
	assert.Equal(t, "Neutral Card", converted.Name)

	// Converting the already-neutral card again must not count the
	// neutral value a second time; only the conversion cost applies.
	again, err := h.ConvertCard(4)
	require.NoError(t, err)
	assert.Equal(t, rules.ConversionCost, again.Points)
	assert.Equal(t, 2, h.Current().ConversionCount)
	assert.Equal(t, rules.NeutralCard+2*rules.ConversionCost, h.Score())
}

func TestHistory_ConvertClearsState(t *testing.T) {
	h := newHistory(t)

	_, err := h.UpdateCard(domain.Card{ID: 6, Type: domain.CardTypeUnique, State: domain.CardStateEpiphany, Name: "Unique Card"})
	require.NoError(t, err)
	entry, err := h.ConvertCard(6)
	require.NoError(t, err)

	assert.Equal(t, "Convert Epiphany Unique Card to Neutral", entry.Description)
	assert.Equal(t, domain.CardStateNone, h.Current().Cards[5].State)
}

func TestHistory_ConvertedThenRemovedHasNoBasicBonus(t *testing.T) {
	h := newHistory(t)
	rules := h.Rules()

	_, err := h.ConvertCard(1)
	require.NoError(t, err)
	entry, err := h.RemoveCard(1)
	require.NoError(t, err)

	// Leaving the active set loses the conversion value; no basic bonus.
	assert.Equal(t, -rules.NeutralCard+rules.RemovalLadder.Cost(0), entry.Points)
	assert.Equal(t, rules.ConversionCost+rules.RemovalLadder.Cost(0), h.Score())
}

func TestHistory_DiscardIsZeroCost(t *testing.T) {
	h := newHistory(t)

	_, err := h.AddCard(domain.CardTypeNeutral)
	require.NoError(t, err)
	_, err = h.ConvertCard(4)
	require.NoError(t, err)

	tests := []struct {
		name string
		id   int
	}{
		{name: "added neutral", id: 9},
		{name: "converted neutral", id: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := h.Len()
			entry, err := h.DiscardCard(tt.id)
			require.NoError(t, err)

			assert.Zero(t, entry.Points)
			assert.Equal(t, "Remove Neutral Card by [Remove] effect", entry.Description)
			assert.Equal(t, before+1, h.Len())
			assert.Equal(t, -1, h.Current().FindCard(tt.id))
			assert.Empty(t, h.Current().RemovedCards)
		})
	}
}

func TestHistory_DiscardRequiresNeutral(t *testing.T) {
	h := newHistory(t)

	_, err := h.DiscardCard(4)
	assert.ErrorIs(t, err, engine.ErrCardNotNeutral)
	assert.Equal(t, 1, h.Len())
}

func TestHistory_UpdateDescriptions(t *testing.T) {
	h := newHistory(t)
	rules := h.Rules()

	entry, err := h.UpdateCard(domain.Card{ID: 4, Type: domain.CardTypeUnique, State: domain.CardStateDivineEpiphany, Name: "Unique Card"})
	require.NoError(t, err)
	assert.Equal(t, "Add Divine Epiphany to Unique Card", entry.Description)
	assert.Equal(t, rules.DivineEpiphanyBonus, entry.Points)

	entry, err = h.UpdateCard(domain.Card{ID: 4, Type: domain.CardTypeUnique, State: domain.CardStateDivineEpiphany, Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Update Divine Epiphany Unique Card", entry.Description)
	assert.Zero(t, entry.Points)
}

func TestHistory_UpdateKeepsEngineOwnedFields(t *testing.T) {
	h := newHistory(t)

	_, err := h.UpdateCard(domain.Card{ID: 5, Type: domain.CardTypeUnique, OriginalType: domain.CardTypeMonster, State: domain.CardStateNone, IsDuplicate: true})
	require.NoError(t, err)

	card := h.Current().Cards[4]
	assert.Equal(t, domain.CardTypeUnique, card.OriginalType)
	assert.False(t, card.IsDuplicate)
}

func TestHistory_UpdateStateGuards(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(h *engine.History)
		update  domain.Card
		wantErr error
	}{
		{
			name: "epiphany cannot be removed",
			setup: func(h *engine.History) {
				h.UpdateCard(domain.Card{ID: 5, Type: domain.CardTypeUnique, State: domain.CardStateEpiphany})
			},
			update:  domain.Card{ID: 5, Type: domain.CardTypeUnique, State: domain.CardStateNone},
			wantErr: engine.ErrStateLocked,
		},
		{
			name: "epiphany cannot be escalated",
			setup: func(h *engine.History) {
				h.UpdateCard(domain.Card{ID: 5, Type: domain.CardTypeUnique, State: domain.CardStateEpiphany})
			},
			update:  domain.Card{ID: 5, Type: domain.CardTypeUnique, State: domain.CardStateDivineEpiphany},
			wantErr: engine.ErrStateLocked,
		},
		{
			name:    "basic cards cannot take epiphany",
			update:  domain.Card{ID: 1, Type: domain.CardTypeBasic, State: domain.CardStateEpiphany},
			wantErr: engine.ErrStateNotAllowed,
		},
		{
			name:    "ultimate cards cannot take epiphany",
			update:  domain.Card{ID: 8, Type: domain.CardTypeUnique, State: domain.CardStateDivineEpiphany, IsUltimate: true},
			wantErr: engine.ErrStateNotAllowed,
		},
		{
			name: "ultimate flag survives a state-neutral update",
			setup: func(h *engine.History) {
				h.UpdateCard(domain.Card{ID: 8, Type: domain.CardTypeUnique, State: domain.CardStateNone, Name: "Ultimate Card"})
			},
			update:  domain.Card{ID: 8, Type: domain.CardTypeUnique, State: domain.CardStateDivineEpiphany},
			wantErr: engine.ErrStateNotAllowed,
		},
		{
			name: "locked card cannot turn basic",
			setup: func(h *engine.History) {
				h.UpdateCard(domain.Card{ID: 5, Type: domain.CardTypeUnique, State: domain.CardStateEpiphany})
			},
			update:  domain.Card{ID: 5, Type: domain.CardTypeBasic, State: domain.CardStateEpiphany},
			wantErr: engine.ErrStateNotAllowed,
		},
		{
			name:    "unknown card",
			update:  domain.Card{ID: 99, Type: domain.CardTypeUnique, State: domain.CardStateEpiphany},
			wantErr: engine.ErrCardNotFound,
		},
		{
			name:    "invalid state",
			update:  domain.Card{ID: 4, Type: domain.CardTypeUnique, State: domain.CardState("ascended")},
			wantErr: domain.ErrInvalidCardState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHistory(t)
			if tt.setup != nil {
				tt.setup(h)
			}
			before := h.Current()

			_, err := h.UpdateCard(tt.update)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, h.Current())
		})
	}
}

func TestHistory_UpdateKeepsServerOwnedFlags(t *testing.T) {
	h := newHistory(t)

	_, err := h.UpdateCard(domain.Card{ID: 8, Type: domain.CardTypeUnique, State: domain.CardStateNone, Name: "Renamed"})
	require.NoError(t, err)

	card := h.Current().Cards[h.Current().FindCard(8)]
	assert.True(t, card.IsUltimate)
	assert.False(t, card.IsDuplicate)
	assert.Equal(t, domain.CardTypeUnique, card.OriginalType)
	assert.Equal(t, "Renamed", card.Name)
}

func TestHistory_MissingCardIsNoOp(t *testing.T) {
	ops := map[string]func(h *engine.History) error{
		"convert":   func(h *engine.History) error { _, err := h.ConvertCard(42); return err },
		"remove":    func(h *engine.History) error { _, err := h.RemoveCard(42); return err },
		"discard":   func(h *engine.History) error { _, err := h.DiscardCard(42); return err },
		"duplicate": func(h *engine.History) error { _, err := h.DuplicateCard(42); return err },
		"update": func(h *engine.History) error {
			_, err := h.UpdateCard(domain.Card{ID: 42, Type: domain.CardTypeUnique, State: domain.CardStateNone})
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			h := newHistory(t)
			_, err := h.AddCard(domain.CardTypeForbidden)
			require.NoError(t, err)
			before := h.Current()

			assert.ErrorIs(t, op(h), engine.ErrCardNotFound)
			assert.Equal(t, 2, h.Len())
			assert.Equal(t, before, h.Current())
		})
	}
}

func TestHistory_RemovedCardIsNoLongerAddressable(t *testing.T) {
	h := newHistory(t)

	_, err := h.RemoveCard(4)
	require.NoError(t, err)

	_, err = h.RemoveCard(4)
	assert.ErrorIs(t, err, engine.ErrCardNotFound)
	_, err = h.DuplicateCard(4)
	assert.ErrorIs(t, err, engine.ErrCardNotFound)
	assert.Equal(t, 2, h.Len())
}

func TestHistory_MonotonicityAndIDUniqueness(t *testing.T) {
	h := newHistory(t)

	cmds := []engine.Command{
		engine.AddCard(domain.CardTypeMonster),
		engine.DuplicateCard(9),
		engine.RemoveCard(9),
		engine.AddCard(domain.CardTypeNeutral),
		engine.DiscardCard(11),
		engine.ConvertCard(2),
		engine.DuplicateCard(10),
		engine.RemoveCard(10),
		engine.AddCard(domain.CardTypeForbidden),
		engine.RemoveCard(999),
	}

	issued := map[int]bool{}
	for _, c := range h.Current().Cards {
		issued[c.ID] = true
	}

	for _, cmd := range cmds {
		before := h.Len()
		prev := h.Current()

		_, err := h.Apply(cmd)
		if err != nil {
			assert.Equal(t, before, h.Len())
			continue
		}
		assert.Equal(t, before+1, h.Len())

		state := h.Current()
		assert.Len(t, state.ActionLog, h.Len()-1)
		assert.GreaterOrEqual(t, len(state.RemovedCards), len(prev.RemovedCards))

		if cmd.Kind == engine.CommandAddCard || cmd.Kind == engine.CommandDuplicateCard {
			added := state.Cards[len(state.Cards)-1]
			for id := range issued {
				assert.Greater(t, added.ID, id)
			}
			issued[added.ID] = true
		}
		for id := range issued {
			assert.Greater(t, state.NextID, id)
		}
	}
}

func TestHistory_UndoIsInverse(t *testing.T) {
	cmds := []engine.Command{
		engine.AddCard(domain.CardTypeUnique),
		engine.UpdateCard(domain.Card{ID: 4, Type: domain.CardTypeUnique, State: domain.CardStateEpiphany}),
		engine.ConvertCard(5),
		engine.RemoveCard(1),
		engine.DuplicateCard(6),
	}

	for _, cmd := range cmds {
		t.Run(string(cmd.Kind), func(t *testing.T) {
			h := newHistory(t)
			_, err := h.AddCard(domain.CardTypeNeutral)
			require.NoError(t, err)

			before := h.Current()
			beforeLen := h.Len()

			_, err = h.Apply(cmd)
			require.NoError(t, err)
			require.True(t, h.Undo())

			assert.Equal(t, beforeLen, h.Len())
			assert.Equal(t, before, h.Current())
		})
	}
}

func TestHistory_UndoAtInitialIsNoOp(t *testing.T) {
	h := newHistory(t)

	assert.False(t, h.Undo())
	assert.Equal(t, 1, h.Len())
}

func TestHistory_SnapshotsDoNotAlias(t *testing.T) {
	h := newHistory(t)

	_, err := h.AddCard(domain.CardTypeMonster)
	require.NoError(t, err)
	_, err = h.RemoveCard(9)
	require.NoError(t, err)

	snaps := h.Snapshots()
	require.Len(t, snaps, 3)
	assert.Len(t, snaps[0].Cards, 8)
	assert.Len(t, snaps[1].Cards, 9)
	assert.Len(t, snaps[2].Cards, 8)
	assert.Empty(t, snaps[1].RemovedCards)
	assert.Len(t, snaps[2].RemovedCards, 1)

	current := h.Current()
	current.Cards[0].Name = "mutated"
	assert.Equal(t, "Basic Card", h.Current().Cards[0].Name)
}

func TestHistory_Reset(t *testing.T) {
	h := newHistory(t)
	_, err := h.AddCard(domain.CardTypeMonster)
	require.NoError(t, err)
	_, err = h.DuplicateCard(9)
	require.NoError(t, err)

	other := []domain.Card{
		{ID: 3, Type: domain.CardTypeBasic, OriginalType: domain.CardTypeBasic, State: domain.CardStateNone},
		{ID: 12, Type: domain.CardTypeUnique, OriginalType: domain.CardTypeUnique, State: domain.CardStateNone},
	}
	h.Reset(other)

	state := h.Current()
	assert.Equal(t, 1, h.Len())
	assert.Len(t, state.Cards, 2)
	assert.Equal(t, 13, state.NextID)
	assert.Zero(t, state.DuplicationCount)
	assert.Empty(t, state.ActionLog)
	assert.Equal(t, 0, h.Score())
	assert.Equal(t, scoring.IDSet{3: {}, 12: {}}, h.InitialCardIDs())
}

func TestHistory_LogIDsIncrease(t *testing.T) {
	h := newHistory(t)

	for i := 0; i < 3; i++ {
		_, err := h.AddCard(domain.CardTypeForbidden)
		require.NoError(t, err)
	}
	require.True(t, h.Undo())
	entry, err := h.AddCard(domain.CardTypeMonster)
	require.NoError(t, err)

	assert.Equal(t, 3, entry.ID)
	assert.Equal(t, 4, h.Current().NextLogID)
	assert.Equal(t, entry, lastLog(t, h))
}

func TestReplay_MatchesDirectApplication(t *testing.T) {
	cmds := []engine.Command{
		engine.AddCard(domain.CardTypeMonster),
		engine.UpdateCard(domain.Card{ID: 4, Type: domain.CardTypeUnique, State: domain.CardStateDivineEpiphany, Name: "Unique Card"}),
		engine.DuplicateCard(9),
		engine.ConvertCard(2),
		engine.DiscardCard(2),
		engine.RemoveCard(1),
	}

	direct := newHistory(t)
	for _, cmd := range cmds {
		_, err := direct.Apply(cmd)
		require.NoError(t, err)
	}

	replayed, err := engine.Replay(defaultDeck(), scoring.DefaultRules(), cmds)
	require.NoError(t, err)

	assert.Equal(t, direct.Snapshots(), replayed.Snapshots())
	assert.Equal(t, direct.Score(), replayed.Score())
	assert.Equal(t, direct.Breakdown(), replayed.Breakdown())
}

func TestReplay_FailingCommand(t *testing.T) {
	cmds := []engine.Command{
		engine.AddCard(domain.CardTypeMonster),
		engine.RemoveCard(77),
	}

	h, err := engine.Replay(defaultDeck(), scoring.DefaultRules(), cmds)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, engine.ErrCardNotFound)
	assert.Contains(t, err.Error(), "replay command 1")
}

func TestApply_RejectsMalformedCommands(t *testing.T) {
	h := newHistory(t)

	_, err := h.Apply(engine.Command{Kind: engine.CommandUpdateCard})
	assert.ErrorIs(t, err, engine.ErrMissingCard)

	_, err = h.Apply(engine.Command{Kind: "shuffle"})
	assert.ErrorIs(t, err, engine.ErrUnknownCommand)

	assert.Equal(t, 1, h.Len())
}

func TestHistory_BreakdownSumsToScore(t *testing.T) {
	h := newHistory(t)
	for _, cmd := range []engine.Command{
		engine.AddCard(domain.CardTypeForbidden),
		engine.UpdateCard(domain.Card{ID: 9, Type: domain.CardTypeForbidden, State: domain.CardStateEpiphany}),
		engine.ConvertCard(5),
		engine.DuplicateCard(6),
		engine.RemoveCard(2),
	} {
		_, err := h.Apply(cmd)
		require.NoError(t, err)
	}

	b := h.Breakdown()
	rules := h.Rules()
	assert.Equal(t, rules.ForbiddenCard, b.Additions)
	assert.Equal(t, rules.EpiphanyBonus, b.Epiphany)
	assert.Equal(t, rules.NeutralCard, b.Conversions)
	assert.Equal(t, rules.ConversionCost, b.ConversionCost)
	assert.Equal(t, rules.BasicRemovalBonus, b.BasicRemovalBonus)
	assert.Equal(t, h.Score(), b.Total)
}
