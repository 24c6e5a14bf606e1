// Package session runs the question loop of one training room: it asks
// questions, judges answers, times them and turns streaks into mastery.
package session

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathrooms/internal/mastery"
	"github.com/abhisek/mathrooms/internal/plugin"
)

// InvalidInputHint is the feedback for answers the plugin cannot read.
const InvalidInputHint = "That doesn't look like an answer. Try again!"

// TimeUpMarker starts the feedback after the timer ran out.
const TimeUpMarker = "Time is up! ⏰"

// Config fixes the parameters of a session for its whole lifetime.
type Config struct {
	// Level is the zero-based level or chapter index passed to the plugin.
	Level int

	// StreakToAdvance is the number of correct answers in a row per mastery
	// level. Values below 1 are raised to 1.
	StreakToAdvance int

	// InitialHighestStreak seeds the highest streak, so a room that was
	// already mastered to some level continues from there.
	InitialHighestStreak int

	// TimeLimit is the time allowed per question. Zero disables the timer.
	TimeLimit time.Duration

	// ScoreWeight multiplies the mastery level into the score. Zero means 1.
	ScoreWeight int
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithLogger sets the logger used for level-ups and timeouts.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// attempt is the state of the question currently on screen. It is replaced
// as a whole when the session moves on.
type attempt struct {
	question plugin.Question
	content  plugin.Content
	timed    bool
	deadline time.Time
	left     time.Duration
}

// Session is the question state machine. It is not safe for concurrent use.
type Session struct {
	id     string
	plugin plugin.Plugin
	cfg    Config
	clock  Clock
	log    *slog.Logger

	state         State
	cur           attempt
	currentStreak int
	highestStreak int
	masteryLevel  int
	progress      []Progress
	idx           int
	feedback      string

	view View
}

// New starts a session on the first question.
func New(p plugin.Plugin, cfg Config, opts ...Option) *Session {
	if cfg.StreakToAdvance < 1 {
		cfg.StreakToAdvance = 1
	}
	if cfg.InitialHighestStreak < 0 {
		cfg.InitialHighestStreak = 0
	}
	if cfg.ScoreWeight < 1 {
		cfg.ScoreWeight = 1
	}
	if cfg.TimeLimit < 0 {
		cfg.TimeLimit = 0
	}

	s := &Session{
		id:            uuid.NewString(),
		plugin:        p,
		cfg:           cfg,
		clock:         SystemClock,
		log:           slog.New(slog.DiscardHandler),
		highestStreak: cfg.InitialHighestStreak,
		masteryLevel:  mastery.LevelFor(cfg.InitialHighestStreak, cfg.StreakToAdvance),
		progress:      []Progress{ProgressPending},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startQuestion()
	s.rebuild()
	return s
}

// ID identifies the session in logs and mastery events.
func (s *Session) ID() string { return s.id }

// State returns the current phase.
func (s *Session) State() State { return s.state }

// MasteryLevel returns the mastery level reached so far.
func (s *Session) MasteryLevel() int { return s.masteryLevel }

// View returns the current snapshot.
func (s *Session) View() View { return s.view }

// PossibleEvents lists the events the current state reacts to.
func (s *Session) PossibleEvents() []EventKind {
	if s.state == StateAwaitingNext {
		return []EventKind{EventNext, EventRefresh}
	}
	return []EventKind{EventAnswer, EventRefresh}
}

// Accepts reports whether kind is valid in the current state.
func (s *Session) Accepts(kind EventKind) bool {
	for _, k := range s.PossibleEvents() {
		if k == kind {
			return true
		}
	}
	return false
}

// Handle applies e. Events that are not valid in the current state are
// ignored.
func (s *Session) Handle(e Event) {
	e = deref(e)
	if e == nil || !s.Accepts(e.Kind()) {
		return
	}
	switch e := e.(type) {
	case Answer:
		s.answer(e.Text)
	case Next:
		s.advance()
	case Refresh:
		s.refresh()
	default:
		return
	}
	s.rebuild()
}

// deref turns pointer events into values. Nil pointers become nil.
func deref(e Event) Event {
	switch p := e.(type) {
	case *Answer:
		if p == nil {
			return nil
		}
		return *p
	case *Next:
		if p == nil {
			return nil
		}
		return *p
	case *Refresh:
		if p == nil {
			return nil
		}
		return *p
	}
	return e
}

func (s *Session) answer(text string) {
	if s.expired() {
		s.timeout()
		return
	}

	res := s.cur.question.Answer(text)
	switch res.Outcome {
	case plugin.OutcomeInvalidInput:
		s.feedback = InvalidInputHint
	case plugin.OutcomeCorrect:
		s.currentStreak++
		if s.currentStreak > s.highestStreak {
			s.highestStreak = s.currentStreak
			level := mastery.LevelFor(s.highestStreak, s.cfg.StreakToAdvance)
			if level > s.masteryLevel {
				s.log.Debug("mastery level up", "session", s.id, "level", level, "streak", s.highestStreak)
			}
			s.masteryLevel = level
		}
		s.progress[s.idx] = ProgressCorrect
		s.advance()
	default:
		s.currentStreak = 0
		s.progress[s.idx] = ProgressWrong
		s.feedback = res.Reveal
		s.state = StateAwaitingNext
	}
}

func (s *Session) refresh() {
	if s.state != StateAnswering || !s.cur.timed {
		return
	}
	if s.expired() {
		s.timeout()
		return
	}
	left := s.cur.deadline.Sub(s.clock.Now())
	if left < 0 {
		left = 0
	}
	s.cur.left = left
}

func (s *Session) expired() bool {
	return s.cur.timed && !s.clock.Now().Before(s.cur.deadline)
}

func (s *Session) timeout() {
	s.log.Debug("question timed out", "session", s.id, "question", s.idx)
	s.currentStreak = 0
	s.progress[s.idx] = ProgressTimedOut
	s.feedback = TimeUpMarker + " " + s.cur.question.Reveal().Reveal
	s.state = StateAwaitingNext
}

// advance moves to a fresh question at the same level.
func (s *Session) advance() {
	s.idx++
	for len(s.progress) <= s.idx {
		s.progress = append(s.progress, ProgressPending)
	}
	s.startQuestion()
}

func (s *Session) startQuestion() {
	q := s.plugin.MakeQuestion(s.cfg.Level)
	s.cur = attempt{question: q, content: q.Read()}
	if s.cfg.TimeLimit > 0 {
		s.cur.timed = true
		s.cur.deadline = s.clock.Now().Add(s.cfg.TimeLimit)
		s.cur.left = s.cfg.TimeLimit
	}
	s.feedback = ""
	s.state = StateAnswering
}

func (s *Session) rebuild() {
	v := View{
		QuestionText:    s.cur.content.Text,
		FeedbackText:    s.feedback,
		CurrentStreak:   s.currentStreak,
		HighestStreak:   s.highestStreak,
		MasteryLevel:    s.masteryLevel,
		StreakToAdvance: s.cfg.StreakToAdvance,
		Score:           s.cfg.ScoreWeight * s.masteryLevel,
		Progress:        append([]Progress(nil), s.progress...),
		QuestionIdx:     s.idx,
		InputEnabled:    s.state == StateAnswering,
	}
	if len(s.cur.content.Media) > 0 {
		v.Media = append([]plugin.Media(nil), s.cur.content.Media...)
	}
	if s.state == StateAnswering && s.cur.timed {
		v.Time = &QuestionTime{PerQuestion: s.cfg.TimeLimit, Left: s.cur.left}
	}
	s.view = v
}
