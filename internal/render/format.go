// Package render turns stored missions into the chat-facing text forms.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spystrach/interimBot/internal/domain"
)

// Mode selects which text form a mission is rendered as.
type Mode int

const (
	// ModeLine is the bulleted full line used by the mission list.
	ModeLine Mode = iota
	// ModeRecap is the full line without the bullet, shown after entry.
	ModeRecap
	// ModeMail is the agency-facing line inside the email summary.
	ModeMail
	// ModeShort is the compact label used on deletion-menu buttons.
	ModeShort
)

// ErrUnknownMode is returned for a Mode outside the defined set.
var ErrUnknownMode = errors.New("unknown render mode")

// Format renders one mission in the given mode.
func Format(m *domain.Mission, mode Mode) (string, error) {
	date, err := DisplayDate(m.Date)
	if err != nil {
		return "", err
	}

	switch mode {
	case ModeLine:
		return fmt.Sprintf(" - (%s) %s à %s, de %s à %s", m.Agency, date, m.Location, m.StartTime, m.EndTime), nil
	case ModeRecap:
		return fmt.Sprintf("(%s) %s à %s, de %s à %s", m.Agency, date, m.Location, m.StartTime, m.EndTime), nil
	case ModeMail:
		return fmt.Sprintf("- %s à %s, de %s à %s", date, m.Location, m.StartTime, m.EndTime), nil
	case ModeShort:
		return fmt.Sprintf("%s à %s", date, m.Location), nil
	default:
		return "", fmt.Errorf("mode %d: %w", mode, ErrUnknownMode)
	}
}

// ListText renders the full mission list, or the empty-store hint.
func ListText(missions []*domain.Mission) (string, error) {
	if len(missions) == 0 {
		return "pas de mission enregistrées :(\nutilises la commande '/nouvelle_mission'", nil
	}

	var b strings.Builder
	b.WriteString("toutes les missions enregistrées :")
	for _, m := range missions {
		line, err := Format(m, ModeLine)
		if err != nil {
			return "", err
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String(), nil
}
