package engine

import (
	"fmt"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/scoring"
)

type CommandKind string

const (
	CommandAddCard       CommandKind = "add_card"
	CommandUpdateCard    CommandKind = "update_card"
	CommandConvertCard   CommandKind = "convert_card"
	CommandRemoveCard    CommandKind = "remove_card"
	CommandDiscardCard   CommandKind = "discard_card"
	CommandDuplicateCard CommandKind = "duplicate_card"
)

// Command is a serialisable user intent. Which fields are read depends on
// Kind: CardType for add, Card for update, CardID for the rest.
type Command struct {
	Kind     CommandKind     `json:"kind"`
	CardType domain.CardType `json:"cardType,omitempty"`
	CardID   int             `json:"cardId,omitempty"`
	Card     *domain.Card    `json:"card,omitempty"`
}

func AddCard(t domain.CardType) Command {
	return Command{Kind: CommandAddCard, CardType: t}
}

func UpdateCard(card domain.Card) Command {
	c := card.Clone()
	return Command{Kind: CommandUpdateCard, Card: &c}
}

func ConvertCard(id int) Command {
	return Command{Kind: CommandConvertCard, CardID: id}
}

func RemoveCard(id int) Command {
	return Command{Kind: CommandRemoveCard, CardID: id}
}

func DiscardCard(id int) Command {
	return Command{Kind: CommandDiscardCard, CardID: id}
}

func DuplicateCard(id int) Command {
	return Command{Kind: CommandDuplicateCard, CardID: id}
}

// Apply dispatches a command to the matching operation.
func (h *History) Apply(cmd Command) (domain.ActionLogEntry, error) {
	switch cmd.Kind {
	case CommandAddCard:
		return h.AddCard(cmd.CardType)
	case CommandUpdateCard:
		if cmd.Card == nil {
			return domain.ActionLogEntry{}, ErrMissingCard
		}
		return h.UpdateCard(*cmd.Card)
	case CommandConvertCard:
		return h.ConvertCard(cmd.CardID)
	case CommandRemoveCard:
		return h.RemoveCard(cmd.CardID)
	case CommandDiscardCard:
		return h.DiscardCard(cmd.CardID)
	case CommandDuplicateCard:
		return h.DuplicateCard(cmd.CardID)
	}
	return domain.ActionLogEntry{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind)
}

// Replay rebuilds a history by applying commands over a fresh deck. Every
// command must succeed; a failing command means the stored history does not
// belong to this deck.
func Replay(deck []domain.Card, rules scoring.Rules, cmds []Command) (*History, error) {
	h := New(deck, rules)
	for i, cmd := range cmds {
		if _, err := h.Apply(cmd); err != nil {
			return nil, fmt.Errorf("replay command %d (%s): %w", i, cmd.Kind, err)
		}
	}
	return h, nil
}
