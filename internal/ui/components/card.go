package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathrooms/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for all cards.
func ContentWidth(frameWidth int) int {
	// Leave room for the card border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 70 {
		w = 70
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw-2).
		Align(lipgloss.Center).
		Render(content)
}
