// Package welcome asks who is playing and shows the highscore list.
package welcome

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathrooms/internal/profile"
	"github.com/abhisek/mathrooms/internal/router"
	"github.com/abhisek/mathrooms/internal/screen"
	"github.com/abhisek/mathrooms/internal/ui/components"
	"github.com/abhisek/mathrooms/internal/ui/layout"
	"github.com/abhisek/mathrooms/internal/ui/theme"
)

// maxHighscores is the number of rows in the highscore list.
const maxHighscores = 8

// StartFunc builds the screen a player continues to.
type StartFunc func(name string) (screen.Screen, error)

type highscoresMsg struct {
	profiles []*profile.Profile
	err      error
}

// WelcomeScreen reads the player's name.
type WelcomeScreen struct {
	repo       profile.Repo
	start      StartFunc
	input      components.TextInput
	highscores []*profile.Profile
	errMsg     string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)
var _ screen.Resumer = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. name pre-fills the input.
func New(repo profile.Repo, name string, start StartFunc) *WelcomeScreen {
	input := components.NewTextInput("Your name", 24)
	input.Model.SetValue(name)
	return &WelcomeScreen{
		repo:  repo,
		start: start,
		input: input,
	}
}

func (w *WelcomeScreen) Title() string {
	return "Who is playing?"
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Play"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(w.input.Init(), w.loadHighscores())
}

// Resume reloads the highscores after a training run.
func (w *WelcomeScreen) Resume() tea.Cmd {
	return tea.Batch(w.input.SetEnabled(true), w.loadHighscores())
}

func (w *WelcomeScreen) loadHighscores() tea.Cmd {
	repo := w.repo
	return func() tea.Msg {
		ps, err := repo.List(context.Background())
		return highscoresMsg{profiles: ps, err: err}
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case highscoresMsg:
		if msg.err != nil {
			w.highscores = nil
			return w, nil
		}
		w.highscores = msg.profiles
		return w, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return w, tea.Quit
		case "enter":
			return w, w.submit()
		}
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) submit() tea.Cmd {
	name := strings.TrimSpace(w.input.Value())
	if name == "" {
		w.errMsg = "Type your name first"
		return nil
	}
	next, err := w.start(name)
	if err != nil {
		w.errMsg = err.Error()
		return nil
	}
	w.errMsg = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(height), "")
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("What is your name?"))
	sections = append(sections, w.input.View())

	if w.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(w.errMsg))
	}

	if len(w.highscores) > 0 {
		sections = append(sections, "", w.renderHighscores(components.ContentWidth(width)))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (w *WelcomeScreen) renderHighscores(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Highscores"))
	for i, p := range w.highscores {
		if i == maxHighscores {
			break
		}
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("%2d. %-20s %6d", i+1, p.Name, p.TotalScore())))
	}
	return components.Card(b.String(), cw)
}
