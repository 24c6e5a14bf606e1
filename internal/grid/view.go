package grid

import "github.com/abhisek/mathrooms/internal/mastery"

// View is an immutable snapshot of a grid for rendering. Rooms is sparse:
// open rooms are Unlocked, rooms next to an open room are Locked, everything
// else is left out.
type View struct {
	Title    string
	Rooms    mastery.Grid
	CurrentX int
	CurrentY int
	Hint     string
	Width    int
	Height   int
}

// Current returns the selected room.
func (v View) Current() mastery.Room {
	return mastery.Room{Difficulty: v.CurrentX, TimePressure: v.CurrentY}
}

// Equal reports whether two snapshots render identically.
func (v View) Equal(o View) bool {
	if v.Title != o.Title || v.CurrentX != o.CurrentX || v.CurrentY != o.CurrentY ||
		v.Hint != o.Hint || v.Width != o.Width || v.Height != o.Height ||
		len(v.Rooms) != len(o.Rooms) {
		return false
	}
	for r, s := range v.Rooms {
		if os, ok := o.Rooms[r]; !ok || os != s {
			return false
		}
	}
	return true
}

func (g *Grid) rebuild() {
	rooms := make(mastery.Grid)
	for d := 1; d <= g.width; d++ {
		for t := 1; t <= g.height; t++ {
			r := mastery.Room{Difficulty: d, TimePressure: t}
			switch {
			case g.open(r) || r == g.current:
				rooms[r] = mastery.UnlockedAt(r, g.levels[r])
			case g.nextToOpen(r):
				rooms[r] = mastery.Locked()
			}
		}
	}
	g.view = View{
		Title:    g.info.Name,
		Rooms:    rooms,
		CurrentX: g.current.Difficulty,
		CurrentY: g.current.TimePressure,
		Hint:     g.hint(),
		Width:    g.width,
		Height:   g.height,
	}
}

func (g *Grid) nextToOpen(r mastery.Room) bool {
	for _, dir := range []Direction{Left, Right, Up, Down} {
		n := dir.apply(r)
		if g.inBounds(n) && g.open(n) {
			return true
		}
	}
	return false
}
