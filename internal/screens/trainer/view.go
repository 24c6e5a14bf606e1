package trainer

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/abhisek/mathrooms/internal/grid"
	"github.com/abhisek/mathrooms/internal/ladder"
	"github.com/abhisek/mathrooms/internal/mastery"
	"github.com/abhisek/mathrooms/internal/session"
	core "github.com/abhisek/mathrooms/internal/trainer"
	"github.com/abhisek/mathrooms/internal/ui/components"
	"github.com/abhisek/mathrooms/internal/ui/layout"
	"github.com/abhisek/mathrooms/internal/ui/theme"
)

// streakEmojis maps a streak threshold to the emoji shown from there on.
var streakEmojis = []struct {
	from  int
	emoji string
}{
	{1, "🌕"},
	{2, "🦜"},
	{3, "🌴"},
	{4, "🪐"},
	{5, "🐢"},
	{6, "😃"},
	{7, "🤓"},
	{8, "🤩"},
	{9, "😲"},
	{12, "🤯"},
	{30, "🥳🎈🎉🎊"},
}

// StreakEmoji returns the emoji for the highest threshold streak reaches.
func StreakEmoji(streak int) string {
	out := ""
	for _, e := range streakEmojis {
		if streak < e.from {
			break
		}
		out = e.emoji
	}
	return out
}

const (
	cellWidth        = 6
	compactCellWidth = 5
	maxDotsShown     = 30
	compactDotsShown = 15
	iconColumn   = 4
)

// renderCache holds the last rendered body. The answer input is drawn on top
// of it on every frame.
type renderCache struct {
	view          core.View
	width, height int
	errMsg        string
	body          string
	valid         bool
}

func (c *renderCache) get(v core.View, width, height int, errMsg string) (string, bool) {
	if !c.valid || c.width != width || c.height != height || c.errMsg != errMsg || !c.view.Equal(v) {
		return "", false
	}
	return c.body, true
}

func (c *renderCache) put(v core.View, width, height int, errMsg, body string) {
	*c = renderCache{view: v, width: width, height: height, errMsg: errMsg, body: body, valid: true}
}

func (s *TrainerScreen) View(width, height int) string {
	v := s.core.View()
	body, ok := s.cache.get(v, width, height, s.errMsg)
	if !ok {
		body = s.renderBody(v, width, height)
		s.cache.put(v, width, height, s.errMsg, body)
	}

	content := body
	if v.Kind == core.KindQuestion {
		content = strings.Replace(body, inputSlot, s.input.View(), 1)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// inputSlot marks where the live answer input goes in a cached body.
const inputSlot = "[[answer]]"

// renderBody draws the active view. height is the content height below the
// header; compact terminals get narrower grid cells and fewer progress dots.
func (s *TrainerScreen) renderBody(v core.View, width, height int) string {
	cw := components.ContentWidth(width)
	cellW := cellWidth
	if layout.IsCompactWidth(width) {
		cellW = compactCellWidth
	}
	dots := maxDotsShown
	if layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		dots = compactDotsShown
	}

	var body string
	switch v.Kind {
	case core.KindSelect:
		body = renderSelect(*v.Select, cw)
	case core.KindGrid:
		body = renderGrid(*v.Grid, cw, cellW)
	case core.KindQuestion:
		body = renderQuestion(*v.Question, cw, dots)
	}
	if s.errMsg != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}
	return body
}

func renderSelect(v ladder.View, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(v.Title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · total score %d", v.PlayerName, v.TotalScore)))
	b.WriteString("\n\n")

	labelWidth := cw - iconColumn - 12
	if labelWidth < 8 {
		labelWidth = 8
	}
	for i, item := range v.Items {
		icon := runewidth.FillRight(runewidth.Truncate(item.Icon, iconColumn-1, ""), iconColumn)
		label := runewidth.FillRight(runewidth.Truncate(item.Label, labelWidth, "…"), labelWidth)
		line := fmt.Sprintf("%s%s%8d", icon, label, item.Score)

		marker := "  "
		style := theme.Unselected
		if i == v.Selected {
			marker = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(marker + line))
		b.WriteString("\n")
		if i == v.Selected && item.Description != "" {
			b.WriteString(theme.Hint.Render("    " + item.Description))
			b.WriteString("\n")
		}
	}
	return components.Card(strings.TrimRight(b.String(), "\n"), cw)
}

func renderGrid(v grid.View, cw, cellW int) string {
	visible := (cw - 4) / cellW
	if visible < 1 {
		visible = 1
	}
	first := 1
	if v.Width > visible && v.CurrentX > visible/2 {
		first = v.CurrentX - visible/2
		if first+visible-1 > v.Width {
			first = v.Width - visible + 1
		}
	}
	last := first + visible - 1
	if last > v.Width {
		last = v.Width
	}

	var rows []string
	for y := 1; y <= v.Height; y++ {
		var cells []string
		for x := first; x <= last; x++ {
			cells = append(cells, renderCell(v, mastery.Room{Difficulty: x, TimePressure: y}, cellW))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(v.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(v.Hint))
	return b.String()
}

func renderCell(v grid.View, r mastery.Room, cellW int) string {
	status, ok := v.Rooms[r]
	label := ""
	style := theme.CellLocked
	switch {
	case !ok:
	case status.IsUnlocked():
		label = fmt.Sprintf("%d", status.Level)
		style = theme.CellOpen
		if r == v.Current() {
			style = theme.CellCurrent
		}
	default:
		label = "··"
	}
	return style.Width(cellW).Align(lipgloss.Center).Render(label)
}

func renderQuestion(v session.View, cw, dots int) string {
	var sections []string

	sections = append(sections, renderProgress(v.Progress, v.QuestionIdx, dots))
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Streak %d · Best %d · Level %d · Score %d",
			v.CurrentStreak, v.HighestStreak, v.MasteryLevel, v.Score)))

	if emoji := StreakEmoji(v.CurrentStreak); emoji != "" {
		sections = append(sections, emoji)
	}

	if v.StreakToAdvance > 0 && v.MasteryLevel < mastery.MaxLevel {
		toNext := float64(v.HighestStreak%v.StreakToAdvance) / float64(v.StreakToAdvance)
		sections = append(sections, components.NewProgressBar("Next level", toNext, false, cw).View())
	}

	if v.Time != nil && v.Time.PerQuestion > 0 {
		left := float64(v.Time.Left) / float64(v.Time.PerQuestion)
		label := fmt.Sprintf("⏱ %4.1fs", v.Time.Left.Seconds())
		sections = append(sections, components.NewProgressBar(label, left, false, cw).View())
	}

	sections = append(sections, "", lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(v.QuestionText))

	for _, m := range v.Media {
		line := m.Ref
		if m.Caption != "" {
			line = m.Caption + ": " + m.Ref
		}
		sections = append(sections, theme.Hint.Render(line))
	}

	sections = append(sections, "", inputSlot)

	if v.FeedbackText != "" {
		sections = append(sections, "", theme.Feedback.Render(v.FeedbackText))
	}
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

func renderProgress(progress []session.Progress, current, maxDots int) string {
	start := 0
	if len(progress) > maxDots {
		start = len(progress) - maxDots
	}
	var b strings.Builder
	for i := start; i < len(progress); i++ {
		p := progress[i]
		if !p.Done() {
			if i == current {
				b.WriteString(theme.Selected.Render("◉"))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("○"))
			}
			continue
		}
		switch p {
		case session.ProgressCorrect:
			b.WriteString(theme.Correct.Render("●"))
		case session.ProgressWrong:
			b.WriteString(theme.Incorrect.Render("✗"))
		default:
			b.WriteString(theme.Incorrect.Render("⌛"))
		}
	}
	return b.String()
}
