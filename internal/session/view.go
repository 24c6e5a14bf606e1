package session

import (
	"slices"
	"time"

	"github.com/abhisek/mathrooms/internal/plugin"
)

// QuestionTime is the timer of a timed question.
type QuestionTime struct {
	PerQuestion time.Duration
	Left        time.Duration
}

// View is an immutable snapshot of a session for rendering.
// A new View is built on every transition; earlier snapshots never change.
type View struct {
	QuestionText    string
	Media           []plugin.Media
	FeedbackText    string
	CurrentStreak   int
	HighestStreak   int
	MasteryLevel    int
	StreakToAdvance int
	Score           int
	Progress        []Progress
	QuestionIdx     int
	InputEnabled    bool

	// Time is nil for untimed questions and after a miss.
	Time *QuestionTime
}

// Equal reports whether two snapshots render identically.
func (v View) Equal(o View) bool {
	if v.QuestionText != o.QuestionText ||
		v.FeedbackText != o.FeedbackText ||
		v.CurrentStreak != o.CurrentStreak ||
		v.HighestStreak != o.HighestStreak ||
		v.MasteryLevel != o.MasteryLevel ||
		v.StreakToAdvance != o.StreakToAdvance ||
		v.Score != o.Score ||
		v.QuestionIdx != o.QuestionIdx ||
		v.InputEnabled != o.InputEnabled {
		return false
	}
	if !slices.Equal(v.Progress, o.Progress) || !slices.Equal(v.Media, o.Media) {
		return false
	}
	switch {
	case v.Time == nil && o.Time == nil:
		return true
	case v.Time == nil || o.Time == nil:
		return false
	default:
		return *v.Time == *o.Time
	}
}
