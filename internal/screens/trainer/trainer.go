// Package trainer is the terminal front end of the training screens: it maps
// keys to transitions and draws the active view.
package trainer

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathrooms/internal/ladder"
	"github.com/abhisek/mathrooms/internal/plugin"
	"github.com/abhisek/mathrooms/internal/router"
	"github.com/abhisek/mathrooms/internal/screen"
	"github.com/abhisek/mathrooms/internal/session"
	core "github.com/abhisek/mathrooms/internal/trainer"
	"github.com/abhisek/mathrooms/internal/ui/components"
	"github.com/abhisek/mathrooms/internal/ui/layout"
)

// DefaultRefreshInterval is used when New is given no interval.
const DefaultRefreshInterval = 50 * time.Millisecond

type refreshMsg time.Time

// TrainerScreen implements screen.Screen for the select list, the grid and
// the question session.
type TrainerScreen struct {
	sel     *ladder.Select
	core    *core.Screen
	input   components.TextInput
	refresh time.Duration
	ticking bool
	errMsg  string

	cache renderCache
}

var _ screen.Screen = (*TrainerScreen)(nil)
var _ screen.KeyHintProvider = (*TrainerScreen)(nil)
var _ screen.StatusProvider = (*TrainerScreen)(nil)

// New creates the screen on top of a loaded select list.
func New(sel *ladder.Select, c *core.Screen, refresh time.Duration) *TrainerScreen {
	if refresh <= 0 {
		refresh = DefaultRefreshInterval
	}
	return &TrainerScreen{
		sel:     sel,
		core:    c,
		input:   components.NewTextInput("Type your answer...", 64),
		refresh: refresh,
	}
}

func (s *TrainerScreen) Init() tea.Cmd {
	return nil
}

func (s *TrainerScreen) Title() string {
	v := s.core.View()
	switch v.Kind {
	case core.KindGrid:
		return v.Grid.Title
	case core.KindQuestion:
		return s.sel.View().Items[s.sel.Selected()].Label
	}
	return "Trainings"
}

// Status implements screen.StatusProvider.
func (s *TrainerScreen) Status() (string, int) {
	v := s.sel.View()
	return v.PlayerName, v.TotalScore
}

func (s *TrainerScreen) KeyHints() []layout.KeyHint {
	v := s.core.View()
	switch v.Kind {
	case core.KindSelect:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Open"},
			{Key: "Esc", Description: "Change player"},
		}
	case core.KindGrid:
		return []layout.KeyHint{
			{Key: "←↑↓→", Description: "Move"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Trainings"},
		}
	case core.KindQuestion:
		if !v.Question.InputEnabled {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Next question"},
				{Key: "Esc", Description: "Back to grid"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Back to grid"},
		}
	}
	return nil
}

func (s *TrainerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return s, s.handleRefresh()
	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *TrainerScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "esc" {
		s.errMsg = ""
		if !s.core.Escape() {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}
		return nil
	}

	switch s.core.Kind() {
	case core.KindSelect, core.KindGrid:
		return s.handleNavigation(key)
	case core.KindQuestion:
		return s.handleQuestionKey(msg)
	}
	return nil
}

func (s *TrainerScreen) handleNavigation(key string) tea.Cmd {
	switch key {
	case "up", "k":
		s.core.Move(core.Up)
	case "down", "j":
		s.core.Move(core.Down)
	case "left", "h":
		s.core.Move(core.Left)
	case "right", "l":
		s.core.Move(core.Right)
	case "enter":
		if err := s.core.Enter(); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.errMsg = ""
		if s.core.Kind() == core.KindQuestion {
			return s.startQuestion()
		}
	}
	return nil
}

func (s *TrainerScreen) startQuestion() tea.Cmd {
	s.input.Reset()
	return tea.Batch(s.input.SetEnabled(true), s.scheduleRefresh())
}

func (s *TrainerScreen) handleQuestionKey(msg tea.KeyPressMsg) tea.Cmd {
	before := s.core.View().Question
	submit := s.core.SubmitsWith(plugin.AnswerKey(msg.String()))

	if !before.InputEnabled {
		if submit || msg.String() == "enter" {
			s.core.Handle(session.Next{})
			return s.afterHandle(before.QuestionIdx)
		}
		return nil
	}

	if submit {
		s.core.Handle(session.Answer{Text: s.input.Value()})
		return s.afterHandle(before.QuestionIdx)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// afterHandle syncs the input with the session after an event.
func (s *TrainerScreen) afterHandle(prevIdx int) tea.Cmd {
	v := s.core.View().Question
	var cmds []tea.Cmd
	if v.QuestionIdx != prevIdx {
		s.input.Reset()
		cmds = append(cmds, s.scheduleRefresh())
	}
	if v.InputEnabled != s.input.Enabled() {
		cmds = append(cmds, s.input.SetEnabled(v.InputEnabled))
	}
	return tea.Batch(cmds...)
}

func (s *TrainerScreen) scheduleRefresh() tea.Cmd {
	if s.ticking {
		return nil
	}
	v := s.core.View()
	if v.Kind != core.KindQuestion || v.Question.Time == nil {
		return nil
	}
	s.ticking = true
	return s.tick()
}

func (s *TrainerScreen) tick() tea.Cmd {
	return tea.Tick(s.refresh, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (s *TrainerScreen) handleRefresh() tea.Cmd {
	v := s.core.View()
	if v.Kind != core.KindQuestion || v.Question.Time == nil {
		s.ticking = false
		return nil
	}
	idx := v.Question.QuestionIdx
	s.core.Handle(session.Refresh{})
	cmd := s.afterHandle(idx)

	if s.core.View().Question.Time == nil {
		s.ticking = false
		return cmd
	}
	return tea.Batch(cmd, s.tick())
}
