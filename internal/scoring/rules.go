package scoring

import (
	"errors"
	"fmt"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
)

var (
	ErrEmptyLadder      = errors.New("ladder must not be empty")
	ErrDescendingLadder = errors.New("ladder must be ascending")
	ErrAdditionPoints   = errors.New("card addition points must be positive")
	ErrEpiphanyOrder    = errors.New("divine epiphany bonus must exceed epiphany bonus")
)

// Rules is the point table the evaluator scores against.
type Rules struct {
	UniqueCard          int    `yaml:"unique_card" json:"uniqueCard"`
	MonsterCard         int    `yaml:"monster_card" json:"monsterCard"`
	NeutralCard         int    `yaml:"neutral_card" json:"neutralCard"`
	ForbiddenCard       int    `yaml:"forbidden_card" json:"forbiddenCard"`
	EpiphanyBonus       int    `yaml:"epiphany_bonus" json:"epiphanyBonus"`
	DivineEpiphanyBonus int    `yaml:"divine_epiphany_bonus" json:"divineEpiphanyBonus"`
	ConversionCost      int    `yaml:"conversion_cost" json:"conversionCost"`
	BasicRemovalBonus   int    `yaml:"basic_removal_bonus" json:"basicRemovalBonus"`
	DuplicationLadder   Ladder `yaml:"duplication_ladder" json:"duplicationLadder"`
	RemovalLadder       Ladder `yaml:"removal_ladder" json:"removalLadder"`
}

// DefaultRules returns the stock point table.
func DefaultRules() Rules {
	return Rules{
		UniqueCard:          10,
		MonsterCard:         80,
		NeutralCard:         20,
		ForbiddenCard:       40,
		EpiphanyBonus:       10,
		DivineEpiphanyBonus: 20,
		ConversionCost:      -10,
		BasicRemovalBonus:   -10,
		DuplicationLadder:   Ladder{0, 10, 30, 50, 70},
		RemovalLadder:       Ladder{0, 10, 30, 50, 70},
	}
}

func (r Rules) Validate() error {
	additions := map[string]int{
		"unique_card":    r.UniqueCard,
		"monster_card":   r.MonsterCard,
		"neutral_card":   r.NeutralCard,
		"forbidden_card": r.ForbiddenCard,
	}
	for name, points := range additions {
		if points <= 0 {
			return fmt.Errorf("%s: %w", name, ErrAdditionPoints)
		}
	}
	if r.DivineEpiphanyBonus <= r.EpiphanyBonus {
		return ErrEpiphanyOrder
	}
	ladders := map[string]Ladder{
		"duplication_ladder": r.DuplicationLadder,
		"removal_ladder":     r.RemovalLadder,
	}
	for name, ladder := range ladders {
		if len(ladder) == 0 {
			return fmt.Errorf("%s: %w", name, ErrEmptyLadder)
		}
		if !ladder.ascending() {
			return fmt.Errorf("%s: %w", name, ErrDescendingLadder)
		}
	}
	return nil
}

// AdditionPoints is the value of a newly added card of the given type.
// Basic cards are worth nothing on addition.
func (r Rules) AdditionPoints(t domain.CardType) int {
	switch t {
	case domain.CardTypeUnique:
		return r.UniqueCard
	case domain.CardTypeMonster:
		return r.MonsterCard
	case domain.CardTypeNeutral:
		return r.NeutralCard
	case domain.CardTypeForbidden:
		return r.ForbiddenCard
	}
	return 0
}
