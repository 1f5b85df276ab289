package scoring

import "github.com/asterah/chaos-full-nightmare/internal/domain"

// IDSet holds the ids of the cards a combatant was originally dealt.
type IDSet map[int]struct{}

func NewIDSet(cards []domain.Card) IDSet {
	ids := make(IDSet, len(cards))
	for _, c := range cards {
		ids[c.ID] = struct{}{}
	}
	return ids
}

func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Breakdown splits a score into the rule that produced each part.
type Breakdown struct {
	Additions         int `json:"additions"`
	Conversions       int `json:"conversions"`
	Epiphany          int `json:"epiphany"`
	ConversionCost    int `json:"conversionCost"`
	DuplicationCost   int `json:"duplicationCost"`
	RemovalCost       int `json:"removalCost"`
	BasicRemovalBonus int `json:"basicRemovalBonus"`
	Total             int `json:"total"`
}

// Evaluate scores a snapshot against the originally dealt card ids.
func (r Rules) Evaluate(state domain.GameState, initial IDSet) Breakdown {
	var b Breakdown

	for _, card := range state.Cards {
		newlyAdded := !initial.Has(card.ID) && !card.IsDuplicate
		convertedToNeutral := card.Type == domain.CardTypeNeutral && card.OriginalType != domain.CardTypeNeutral

		if newlyAdded {
			b.Additions += r.AdditionPoints(card.Type)
		} else if convertedToNeutral {
			b.Conversions += r.NeutralCard
		}

		if card.Type != domain.CardTypeBasic {
			if card.State == domain.CardStateEpiphany && card.Type != domain.CardTypeUnique {
				b.Epiphany += r.EpiphanyBonus
			} else if card.State == domain.CardStateDivineEpiphany {
				b.Epiphany += r.DivineEpiphanyBonus
			}
		}
	}

	b.ConversionCost = state.ConversionCount * r.ConversionCost
	// Duplications are charged by occurrence, not by which card was copied.
	b.DuplicationCost = r.DuplicationLadder.Total(state.DuplicationCount)

	for i, card := range state.RemovedCards {
		b.RemovalCost += r.RemovalLadder.Cost(i)
		if card.OriginalType == domain.CardTypeBasic && card.Type == domain.CardTypeBasic {
			b.BasicRemovalBonus += r.BasicRemovalBonus
		}
	}

	b.Total = b.Additions + b.Conversions + b.Epiphany +
		b.ConversionCost + b.DuplicationCost + b.RemovalCost + b.BasicRemovalBonus
	return b
}

// Score returns the total score of a snapshot.
func (r Rules) Score(state domain.GameState, initial IDSet) int {
	return r.Evaluate(state, initial).Total
}
