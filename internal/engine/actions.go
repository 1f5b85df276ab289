package engine

import (
	"github.com/asterah/chaos-full-nightmare/internal/domain"
)

// AddCard appends a new card of the given type with a fresh id.
func (h *History) AddCard(t domain.CardType) (domain.ActionLogEntry, error) {
	if !t.Valid() {
		return domain.ActionLogEntry{}, domain.ErrInvalidCardType
	}

	next := h.last().Clone()
	next.Cards = append(next.Cards, domain.Card{
		ID:           next.NextID,
		Type:         t,
		OriginalType: t,
		State:        domain.CardStateNone,
		Name:         defaultCardName(t),
	})
	next.NextID++

	return h.commit(next, "Add "+defaultCardName(t)), nil
}

// UpdateCard replaces the card with the same id. The card's original type
// and duplicate flag belong to the engine and are carried over from the
// current card. Epiphany states are one-way: once set they cannot change.
func (h *History) UpdateCard(updated domain.Card) (domain.ActionLogEntry, error) {
	prev := h.last()
	idx := prev.FindCard(updated.ID)
	if idx < 0 {
		return domain.ActionLogEntry{}, ErrCardNotFound
	}
	if !updated.Type.Valid() {
		return domain.ActionLogEntry{}, domain.ErrInvalidCardType
	}
	if !updated.State.Valid() {
		return domain.ActionLogEntry{}, domain.ErrInvalidCardState
	}

	old := prev.Cards[idx]
	if updated.State != old.State && old.State.Locked() {
		return domain.ActionLogEntry{}, ErrStateLocked
	}
	// Checked on every update so a type change cannot smuggle a locked
	// state onto a Basic card.
	if updated.State.Locked() && (updated.Type == domain.CardTypeBasic || old.IsUltimate) {
		return domain.ActionLogEntry{}, ErrStateNotAllowed
	}

	updated = updated.Clone()
	updated.OriginalType = old.OriginalType
	updated.IsDuplicate = old.IsDuplicate
	updated.IsUltimate = old.IsUltimate

	next := prev.Clone()
	next.Cards[idx] = updated

	return h.commit(next, describeUpdate(old, updated)), nil
}

// ConvertCard turns a card into a Neutral card and clears its state.
func (h *History) ConvertCard(id int) (domain.ActionLogEntry, error) {
	prev := h.last()
	idx := prev.FindCard(id)
	if idx < 0 {
		return domain.ActionLogEntry{}, ErrCardNotFound
	}
	old := prev.Cards[idx]

	next := prev.Clone()
	next.Cards[idx].Type = domain.CardTypeNeutral
	next.Cards[idx].State = domain.CardStateNone
	next.Cards[idx].Name = defaultCardName(domain.CardTypeNeutral)
	next.ConversionCount++

	return h.commit(next, "Convert "+DisplayName(old)+" to Neutral"), nil
}

// RemoveCard moves a card to the removed pile, keeping the state it had
// when it was removed.
func (h *History) RemoveCard(id int) (domain.ActionLogEntry, error) {
	prev := h.last()
	idx := prev.FindCard(id)
	if idx < 0 {
		return domain.ActionLogEntry{}, ErrCardNotFound
	}
	old := prev.Cards[idx]

	next := prev.Clone()
	next.Cards = append(next.Cards[:idx], next.Cards[idx+1:]...)
	next.RemovedCards = append(next.RemovedCards, old.Clone())

	return h.commit(next, "Remove "+DisplayName(old)), nil
}

// DiscardCard drops a Neutral card through its own remove effect. It does
// not enter the removed pile and always logs zero points.
func (h *History) DiscardCard(id int) (domain.ActionLogEntry, error) {
	prev := h.last()
	idx := prev.FindCard(id)
	if idx < 0 {
		return domain.ActionLogEntry{}, ErrCardNotFound
	}
	if prev.Cards[idx].Type != domain.CardTypeNeutral {
		return domain.ActionLogEntry{}, ErrCardNotNeutral
	}

	next := prev.Clone()
	next.Cards = append(next.Cards[:idx], next.Cards[idx+1:]...)

	return h.commitWithPoints(next, discardDescription, 0), nil
}

// DuplicateCard appends a copy of a card. The copy gets a fresh id, no
// state, is never the ultimate and is flagged as a duplicate. Cards with the
// unique effect are not refused here.
func (h *History) DuplicateCard(id int) (domain.ActionLogEntry, error) {
	prev := h.last()
	idx := prev.FindCard(id)
	if idx < 0 {
		return domain.ActionLogEntry{}, ErrCardNotFound
	}
	source := prev.Cards[idx]

	next := prev.Clone()
	dup := source.Clone()
	dup.ID = next.NextID
	dup.State = domain.CardStateNone
	dup.IsUltimate = false
	dup.IsDuplicate = true
	next.Cards = append(next.Cards, dup)
	next.DuplicationCount++
	next.NextID++

	return h.commit(next, "Duplicate "+DisplayName(source)), nil
}
