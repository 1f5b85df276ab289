package engine

import (
	"fmt"
	"strings"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const discardDescription = "Remove Neutral Card by [Remove] effect"

func title(s string) string {
	return cases.Title(language.English).String(s)
}

func typeLabel(t domain.CardType) string {
	return title(string(t))
}

func stateLabel(s domain.CardState) string {
	return title(strings.ReplaceAll(string(s), "_", " "))
}

func defaultCardName(t domain.CardType) string {
	return typeLabel(t) + " Card"
}

// BaseName is the card's label without its state.
func BaseName(c domain.Card) string {
	if c.Name != "" {
		return c.Name
	}
	if c.IsUltimate {
		return "Ultimate Card"
	}
	return defaultCardName(c.Type)
}

// DisplayName prefixes the base name with the card's state, e.g.
// "Divine Epiphany Deluge".
func DisplayName(c domain.Card) string {
	if c.State != domain.CardStateNone && c.State != "" {
		return stateLabel(c.State) + " " + BaseName(c)
	}
	return BaseName(c)
}

func describeUpdate(old, updated domain.Card) string {
	if old.State == updated.State {
		return "Update " + DisplayName(old)
	}
	base := BaseName(old)
	switch {
	case updated.State == domain.CardStateNone:
		return fmt.Sprintf("Remove %s from %s", stateLabel(old.State), base)
	case old.State == domain.CardStateNone:
		return fmt.Sprintf("Add %s to %s", stateLabel(updated.State), base)
	default:
		return fmt.Sprintf("Change %s to %s", base, stateLabel(updated.State))
	}
}
