package session

import "time"

// State is the phase of a question session.
type State int

const (
	StateAnswering    State = iota // waiting for the player's answer
	StateAwaitingNext              // showing feedback after a miss
)

func (s State) String() string {
	if s == StateAwaitingNext {
		return "awaiting-next"
	}
	return "answering"
}

// EventKind names an event type without its payload.
type EventKind int

const (
	EventAnswer EventKind = iota
	EventNext
	EventRefresh
)

func (k EventKind) String() string {
	switch k {
	case EventAnswer:
		return "answer"
	case EventNext:
		return "next"
	case EventRefresh:
		return "refresh"
	default:
		return "unknown"
	}
}

// Event is an input delivered to a session.
type Event interface {
	Kind() EventKind
}

// Answer submits the text typed by the player.
type Answer struct {
	Text string
}

// Next moves on after feedback.
type Next struct{}

// Refresh updates the timer. It is sent by the shell on every tick.
type Refresh struct{}

func (Answer) Kind() EventKind  { return EventAnswer }
func (Next) Kind() EventKind    { return EventNext }
func (Refresh) Kind() EventKind { return EventRefresh }

// Clock reads the current time. Implementations must be monotonic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// Now returns time.Now, which carries a monotonic reading.
func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}
