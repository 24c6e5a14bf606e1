package session

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/mathrooms/internal/plugin/plugintest"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func newSession(cfg Config, clock *fakeClock) (*Session, *plugintest.Plugin) {
	p := &plugintest.Plugin{}
	return New(p, cfg, WithClock(clock)), p
}

func TestNew_InitialView(t *testing.T) {
	s, p := newSession(Config{Level: 2, StreakToAdvance: 5}, newClock())
	v := s.View()

	if s.State() != StateAnswering {
		t.Errorf("State = %v, want answering", s.State())
	}
	if len(v.Progress) != 1 || v.Progress[0] != ProgressPending {
		t.Errorf("Progress = %v, want [pending]", v.Progress)
	}
	if !v.InputEnabled {
		t.Error("InputEnabled = false, want true")
	}
	if v.Time != nil {
		t.Errorf("Time = %+v, want nil for untimed session", v.Time)
	}
	if v.QuestionText != "level 2 question 1" {
		t.Errorf("QuestionText = %q", v.QuestionText)
	}
	if len(p.Requested) != 1 || p.Requested[0] != 2 {
		t.Errorf("Requested = %v, want [2]", p.Requested)
	}
}

func TestNew_SeedsMasteryFromHighestStreak(t *testing.T) {
	s, _ := newSession(Config{StreakToAdvance: 5, InitialHighestStreak: 15, ScoreWeight: 6}, newClock())
	v := s.View()
	if v.MasteryLevel != 3 {
		t.Errorf("MasteryLevel = %d, want 3", v.MasteryLevel)
	}
	if v.HighestStreak != 15 {
		t.Errorf("HighestStreak = %d, want 15", v.HighestStreak)
	}
	if v.Score != 18 {
		t.Errorf("Score = %d, want 18", v.Score)
	}
}

func TestNew_StreakToAdvanceAtLeastOne(t *testing.T) {
	s, _ := newSession(Config{StreakToAdvance: 0}, newClock())
	if got := s.View().StreakToAdvance; got != 1 {
		t.Errorf("StreakToAdvance = %d, want 1", got)
	}
}

func TestCorrectAnswers_BuildStreakAndMastery(t *testing.T) {
	s, _ := newSession(Config{StreakToAdvance: 5}, newClock())

	for i := 1; i <= 12; i++ {
		s.Handle(Answer{Text: plugintest.Correct})
		v := s.View()
		if v.CurrentStreak != i {
			t.Fatalf("after %d correct: CurrentStreak = %d", i, v.CurrentStreak)
		}
		if v.HighestStreak != i {
			t.Fatalf("after %d correct: HighestStreak = %d", i, v.HighestStreak)
		}
		if want := min(i/5, 10); v.MasteryLevel != want {
			t.Fatalf("after %d correct: MasteryLevel = %d, want %d", i, v.MasteryLevel, want)
		}
		if v.QuestionIdx != i {
			t.Fatalf("after %d correct: QuestionIdx = %d", i, v.QuestionIdx)
		}
		if s.State() != StateAnswering {
			t.Fatalf("correct answer left state %v", s.State())
		}
		if v.Progress[i-1] != ProgressCorrect || v.Progress[i] != ProgressPending {
			t.Fatalf("Progress = %v", v.Progress)
		}
		if len(v.Progress) != i+1 {
			t.Fatalf("len(Progress) = %d, want %d", len(v.Progress), i+1)
		}
	}
}

func TestMastery_CappedAtTen(t *testing.T) {
	s, _ := newSession(Config{StreakToAdvance: 1}, newClock())
	for range 15 {
		s.Handle(Answer{Text: plugintest.Correct})
	}
	if got := s.View().MasteryLevel; got != 10 {
		t.Errorf("MasteryLevel = %d, want 10", got)
	}
}

func TestWrongAnswer_ResetsStreakAndAwaitsNext(t *testing.T) {
	s, _ := newSession(Config{StreakToAdvance: 1}, newClock())
	s.Handle(Answer{Text: plugintest.Correct})
	s.Handle(Answer{Text: "no"})

	v := s.View()
	if s.State() != StateAwaitingNext {
		t.Fatalf("State = %v, want awaiting-next", s.State())
	}
	if v.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0", v.CurrentStreak)
	}
	if v.HighestStreak != 1 || v.MasteryLevel != 1 {
		t.Errorf("HighestStreak/MasteryLevel = %d/%d, want 1/1", v.HighestStreak, v.MasteryLevel)
	}
	if v.Progress[1] != ProgressWrong {
		t.Errorf("Progress[1] = %v, want wrong", v.Progress[1])
	}
	if v.FeedbackText != plugintest.Correct {
		t.Errorf("FeedbackText = %q, want reveal", v.FeedbackText)
	}
	if v.InputEnabled {
		t.Error("InputEnabled = true after wrong answer")
	}
	if v.QuestionIdx != 1 {
		t.Errorf("QuestionIdx = %d, want 1", v.QuestionIdx)
	}

	s.Handle(Next{})
	v = s.View()
	if s.State() != StateAnswering {
		t.Fatalf("State after Next = %v", s.State())
	}
	if v.QuestionIdx != 2 || v.FeedbackText != "" || !v.InputEnabled {
		t.Errorf("after Next: idx=%d feedback=%q input=%v", v.QuestionIdx, v.FeedbackText, v.InputEnabled)
	}
	if len(v.Progress) != 3 || v.Progress[2] != ProgressPending {
		t.Errorf("Progress = %v", v.Progress)
	}
}

func TestInvalidInput_KeepsCounters(t *testing.T) {
	s, _ := newSession(Config{StreakToAdvance: 2}, newClock())
	s.Handle(Answer{Text: plugintest.Correct})
	before := s.View()

	s.Handle(Answer{Text: "   "})
	v := s.View()
	if s.State() != StateAnswering {
		t.Errorf("State = %v, want answering", s.State())
	}
	if v.FeedbackText != InvalidInputHint {
		t.Errorf("FeedbackText = %q", v.FeedbackText)
	}
	if v.CurrentStreak != before.CurrentStreak || v.QuestionIdx != before.QuestionIdx {
		t.Error("invalid input changed counters")
	}
	if v.Progress[v.QuestionIdx] != ProgressPending {
		t.Errorf("Progress slot = %v, want pending", v.Progress[v.QuestionIdx])
	}
}

func TestNext_IgnoredWhileAnswering(t *testing.T) {
	s, p := newSession(Config{}, newClock())
	before := s.View()
	s.Handle(Next{})
	if !s.View().Equal(before) {
		t.Error("Next while answering changed the view")
	}
	if len(p.Requested) != 1 {
		t.Errorf("Next fetched a question: %v", p.Requested)
	}
}

func TestHandle_PointerEvents(t *testing.T) {
	s, _ := newSession(Config{}, newClock())
	before := s.View()

	var nilAnswer *Answer
	var nilNext *Next
	var nilRefresh *Refresh
	for _, e := range []Event{nil, nilAnswer, nilNext, nilRefresh} {
		s.Handle(e)
	}
	if !s.View().Equal(before) {
		t.Error("nil events changed the view")
	}

	s.Handle(&Answer{Text: plugintest.Correct})
	if s.State() != StateAwaitingNext {
		t.Errorf("State = %v, want awaiting next", s.State())
	}
	s.Handle(&Next{})
	if s.State() != StateAnswering || s.View().QuestionIdx != 1 {
		t.Errorf("State = %v, QuestionIdx = %d", s.State(), s.View().QuestionIdx)
	}
}

func TestAnswer_IgnoredWhileAwaitingNext(t *testing.T) {
	s, _ := newSession(Config{}, newClock())
	s.Handle(Answer{Text: "no"})
	before := s.View()
	s.Handle(Answer{Text: plugintest.Correct})
	if !s.View().Equal(before) {
		t.Error("Answer while awaiting next changed the view")
	}
}

func TestRefresh_CountsDown(t *testing.T) {
	clock := newClock()
	s, _ := newSession(Config{TimeLimit: 10 * time.Second}, clock)

	v := s.View()
	if v.Time == nil || v.Time.PerQuestion != 10*time.Second || v.Time.Left != 10*time.Second {
		t.Fatalf("Time = %+v", v.Time)
	}

	clock.Advance(3500 * time.Millisecond)
	s.Handle(Refresh{})
	if got := s.View().Time.Left; got != 6500*time.Millisecond {
		t.Errorf("Left = %v, want 6.5s", got)
	}
}

func TestTimeout_DetectedByRefresh(t *testing.T) {
	clock := newClock()
	s, _ := newSession(Config{StreakToAdvance: 1, TimeLimit: 5 * time.Second}, clock)
	s.Handle(Answer{Text: plugintest.Correct})

	clock.Advance(5 * time.Second)
	s.Handle(Refresh{})

	v := s.View()
	if s.State() != StateAwaitingNext {
		t.Fatalf("State = %v, want awaiting-next", s.State())
	}
	if v.Progress[1] != ProgressTimedOut {
		t.Errorf("Progress[1] = %v, want timed-out", v.Progress[1])
	}
	if !strings.HasPrefix(v.FeedbackText, TimeUpMarker) || !strings.Contains(v.FeedbackText, plugintest.Correct) {
		t.Errorf("FeedbackText = %q", v.FeedbackText)
	}
	if v.CurrentStreak != 0 || v.HighestStreak != 1 || v.MasteryLevel != 1 {
		t.Errorf("counters after timeout: %d/%d/%d", v.CurrentStreak, v.HighestStreak, v.MasteryLevel)
	}
	if v.Time != nil {
		t.Errorf("Time = %+v, want nil while awaiting next", v.Time)
	}
}

func TestTimeout_DetectedByAnswer(t *testing.T) {
	clock := newClock()
	s, _ := newSession(Config{TimeLimit: 5 * time.Second}, clock)

	clock.Advance(6 * time.Second)
	s.Handle(Answer{Text: plugintest.Correct})

	v := s.View()
	if v.Progress[0] != ProgressTimedOut {
		t.Errorf("Progress[0] = %v, want timed-out", v.Progress[0])
	}
	if v.CurrentStreak != 0 {
		t.Errorf("late correct answer counted: streak %d", v.CurrentStreak)
	}
	if !strings.Contains(v.FeedbackText, plugintest.Correct) {
		t.Errorf("FeedbackText = %q, want reveal", v.FeedbackText)
	}
}

func TestTimer_ResetsOnNextQuestion(t *testing.T) {
	clock := newClock()
	s, _ := newSession(Config{TimeLimit: 5 * time.Second}, clock)

	clock.Advance(4 * time.Second)
	s.Handle(Answer{Text: plugintest.Correct})
	clock.Advance(4 * time.Second)
	s.Handle(Refresh{})

	if s.State() != StateAnswering {
		t.Fatalf("new question timed out using the old deadline")
	}
	if got := s.View().Time.Left; got != time.Second {
		t.Errorf("Left = %v, want 1s", got)
	}
}

func TestRefresh_NoopWhenAwaitingNext(t *testing.T) {
	clock := newClock()
	s, _ := newSession(Config{TimeLimit: time.Second}, clock)
	s.Handle(Answer{Text: "no"})
	before := s.View()

	clock.Advance(time.Minute)
	s.Handle(Refresh{})
	if !s.View().Equal(before) {
		t.Error("Refresh while awaiting next changed the view")
	}
}

func TestView_SnapshotsAreIndependent(t *testing.T) {
	s, _ := newSession(Config{}, newClock())
	first := s.View()
	s.Handle(Answer{Text: "no"})
	if first.Progress[0] != ProgressPending {
		t.Error("earlier snapshot was mutated")
	}
}

func TestPossibleEvents(t *testing.T) {
	s, _ := newSession(Config{}, newClock())
	if got := s.PossibleEvents(); len(got) != 2 || got[0] != EventAnswer || got[1] != EventRefresh {
		t.Errorf("answering: %v", got)
	}
	s.Handle(Answer{Text: "no"})
	if got := s.PossibleEvents(); len(got) != 2 || got[0] != EventNext || got[1] != EventRefresh {
		t.Errorf("awaiting next: %v", got)
	}
}
