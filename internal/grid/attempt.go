package grid

import (
	"github.com/abhisek/mathrooms/internal/mastery"
	"github.com/abhisek/mathrooms/internal/session"
)

// Attempt is a question session bound to the room it was started in. Every
// handled event and the final Escape record the session's mastery level
// against that room.
type Attempt struct {
	grid    *Grid
	room    mastery.Room
	session *session.Session
}

// Room returns the room the attempt was started in.
func (a *Attempt) Room() mastery.Room { return a.room }

// Session returns the underlying question session.
func (a *Attempt) Session() *session.Session { return a.session }

// View returns the session snapshot.
func (a *Attempt) View() session.View { return a.session.View() }

// Handle forwards e to the session and records any mastery gained.
func (a *Attempt) Handle(e session.Event) {
	a.session.Handle(e)
	a.grid.record(a.room, a.session.MasteryLevel(), a.session.ID())
}

// Escape ends the attempt and returns the grid it came from.
func (a *Attempt) Escape() *Grid {
	a.grid.record(a.room, a.session.MasteryLevel(), a.session.ID())
	return a.grid
}
