package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathrooms/internal/ui/theme"
)

const mascotArt = `  ╭───────────╮
  │  ┌─────┐  │
  │  │ ◉ ◉ │  │
  │  │  ▽  │  │
  │  ├─────┤  │
  │  │ +−× │  │
  │  └─────┘  │
  ╰───────────╯`

const bannerText = "M A T H R O O M S"

// RenderBanner returns the banner styled in the primary color. The mascot
// is left out on short terminals.
func RenderBanner(height int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	title := style.Render(bannerText)
	if height < 30 {
		return title
	}
	return style.Render(mascotArt) + "\n\n" + title
}
