package domain

type CardType string

const (
	CardTypeBasic     CardType = "basic"
	CardTypeUnique    CardType = "unique"
	CardTypeNeutral   CardType = "neutral"
	CardTypeMonster   CardType = "monster"
	CardTypeForbidden CardType = "forbidden"
)

// CardTypes lists every card type in display order.
var CardTypes = []CardType{
	CardTypeBasic,
	CardTypeUnique,
	CardTypeNeutral,
	CardTypeMonster,
	CardTypeForbidden,
}

func (t CardType) Valid() bool {
	switch t {
	case CardTypeBasic, CardTypeUnique, CardTypeNeutral, CardTypeMonster, CardTypeForbidden:
		return true
	}
	return false
}

type CardState string

const (
	CardStateNone           CardState = "none"
	CardStateEpiphany       CardState = "epiphany"
	CardStateDivineEpiphany CardState = "divine_epiphany"
)

func (s CardState) Valid() bool {
	switch s {
	case CardStateNone, CardStateEpiphany, CardStateDivineEpiphany:
		return true
	}
	return false
}

// Locked reports whether the state is one of the one-way Epiphany states.
func (s CardState) Locked() bool {
	return s == CardStateEpiphany || s == CardStateDivineEpiphany
}

type CardEffect string

const (
	CardEffectUnique CardEffect = "unique" // cannot be duplicated
	CardEffectRemove CardEffect = "remove" // has a remove effect
)

type Card struct {
	ID           int          `json:"id" yaml:"id"`
	Type         CardType     `json:"type" yaml:"type"`
	OriginalType CardType     `json:"originalType" yaml:"originalType"`
	State        CardState    `json:"state" yaml:"state"`
	Name         string       `json:"name,omitempty" yaml:"name,omitempty"`
	Effects      []CardEffect `json:"effects,omitempty" yaml:"effects,omitempty"`
	IsUltimate   bool         `json:"isUltimate,omitempty" yaml:"isUltimate,omitempty"`
	IsDuplicate  bool         `json:"isDuplicate,omitempty" yaml:"isDuplicate,omitempty"`
	ImageURL     string       `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// Clone returns a copy of the card that shares no memory with c.
func (c Card) Clone() Card {
	if c.Effects != nil {
		c.Effects = append([]CardEffect(nil), c.Effects...)
	}
	return c
}

func (c Card) HasEffect(effect CardEffect) bool {
	for _, e := range c.Effects {
		if e == effect {
			return true
		}
	}
	return false
}

// Duplicable mirrors the front end's duplicate button: Basic cards and cards
// with the unique effect are not offered for duplication.
func (c Card) Duplicable() bool {
	return c.Type != CardTypeBasic && !c.HasEffect(CardEffectUnique)
}

// CloneCards deep-copies a card slice. A nil input yields an empty slice so
// snapshots always serialise as [].
func CloneCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}
