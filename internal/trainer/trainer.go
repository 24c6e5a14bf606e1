// Package trainer ties the select list, the training grid and the question
// session into one screen that is always in exactly one of three states.
package trainer

import (
	"log/slog"

	"github.com/abhisek/mathrooms/internal/grid"
	"github.com/abhisek/mathrooms/internal/ladder"
	"github.com/abhisek/mathrooms/internal/plugin"
	"github.com/abhisek/mathrooms/internal/session"
)

// Kind is the active screen.
type Kind int

const (
	KindSelect Kind = iota
	KindGrid
	KindQuestion
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindGrid:
		return "grid"
	case KindQuestion:
		return "question"
	}
	return "unknown"
}

// Direction is a navigation key.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// View is a tagged snapshot. Only the field matching Kind is set.
type View struct {
	Kind     Kind
	Select   *ladder.View
	Grid     *grid.View
	Question *session.View
}

// Equal reports whether two snapshots render identically.
func (v View) Equal(o View) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindSelect:
		return v.Select != nil && o.Select != nil && v.Select.Equal(*o.Select)
	case KindGrid:
		return v.Grid != nil && o.Grid != nil && v.Grid.Equal(*o.Grid)
	case KindQuestion:
		return v.Question != nil && o.Question != nil && v.Question.Equal(*o.Question)
	}
	return false
}

// Screen holds the active payload.
type Screen struct {
	kind    Kind
	sel     *ladder.Select
	grid    *grid.Grid
	attempt *grid.Attempt
	log     *slog.Logger
}

// Start returns a screen showing the select list.
func Start(sel *ladder.Select, log *slog.Logger) *Screen {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Screen{kind: KindSelect, sel: sel, log: log}
}

// Kind returns the active screen.
func (s *Screen) Kind() Kind { return s.kind }

// View returns the snapshot of the active screen.
func (s *Screen) View() View {
	switch s.kind {
	case KindSelect:
		v := s.sel.View()
		return View{Kind: KindSelect, Select: &v}
	case KindGrid:
		v := s.grid.View()
		return View{Kind: KindGrid, Grid: &v}
	case KindQuestion:
		v := s.attempt.View()
		return View{Kind: KindQuestion, Question: &v}
	}
	return View{Kind: s.kind}
}

// Move navigates the select list or the grid.
func (s *Screen) Move(dir Direction) bool {
	switch s.kind {
	case KindSelect:
		switch dir {
		case Up:
			return s.sel.Move(ladder.Up)
		case Down:
			return s.sel.Move(ladder.Down)
		}
		return false
	case KindGrid:
		return s.grid.Move(gridDirection(dir))
	case KindQuestion:
		return false
	}
	return false
}

func gridDirection(dir Direction) grid.Direction {
	switch dir {
	case Left:
		return grid.Left
	case Right:
		return grid.Right
	case Up:
		return grid.Up
	default:
		return grid.Down
	}
}

// Enter opens the selected training or starts a session in the current
// room. A plugin that cannot be built leaves the select list in place.
func (s *Screen) Enter() error {
	switch s.kind {
	case KindSelect:
		g, err := s.sel.Enter()
		if err != nil {
			return err
		}
		s.grid = g
		s.kind = KindGrid
	case KindGrid:
		s.attempt = s.grid.Enter()
		s.kind = KindQuestion
	case KindQuestion:
	}
	return nil
}

// Escape goes back one level. It reports false on the select list, where
// leaving the trainer is up to the caller.
func (s *Screen) Escape() bool {
	switch s.kind {
	case KindSelect:
		return false
	case KindGrid:
		s.grid = nil
		s.kind = KindSelect
		return true
	case KindQuestion:
		s.grid = s.attempt.Escape()
		s.attempt = nil
		s.kind = KindGrid
		return true
	}
	return false
}

// Handle forwards a question event. It is ignored outside a session.
func (s *Screen) Handle(e session.Event) {
	switch s.kind {
	case KindQuestion:
		s.attempt.Handle(e)
	case KindSelect, KindGrid:
	}
}

// PossibleEvents lists the question events that would be applied.
func (s *Screen) PossibleEvents() []session.EventKind {
	switch s.kind {
	case KindQuestion:
		return s.attempt.Session().PossibleEvents()
	case KindSelect, KindGrid:
	}
	return nil
}

// SubmitsWith reports whether key submits an answer in the running session.
func (s *Screen) SubmitsWith(key plugin.AnswerKey) bool {
	return s.kind == KindQuestion && s.grid.Info().Accepts(key)
}
