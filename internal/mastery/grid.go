package mastery

import "sort"

// Grid maps rooms to their status for one (player, training) pair.
// A room without an entry is locked.
type Grid map[Room]Status

// Status returns the status of room, Locked when absent.
func (g Grid) Status(room Room) Status {
	if s, ok := g[room]; ok {
		return s
	}
	return Locked()
}

// Level returns the mastery level of room, 0 when locked or absent.
func (g Grid) Level(room Room) int {
	s := g.Status(room)
	if !s.IsUnlocked() {
		return 0
	}
	return s.Level
}

// Score sums the scores of all unlocked rooms.
func (g Grid) Score() int {
	total := 0
	for room, s := range g {
		if s.IsUnlocked() {
			total += room.Weight() * ClampLevel(s.Level)
		}
	}
	return total
}

// Clone returns an independent copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for room, s := range g {
		out[room] = s
	}
	return out
}

// Rooms returns the rooms of the grid ordered by difficulty, then time pressure.
func (g Grid) Rooms() []Room {
	rooms := make([]Room, 0, len(g))
	for room := range g {
		rooms = append(rooms, room)
	}
	SortRooms(rooms)
	return rooms
}

// SortRooms orders rooms by difficulty, then time pressure.
func SortRooms(rooms []Room) {
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Difficulty != rooms[j].Difficulty {
			return rooms[i].Difficulty < rooms[j].Difficulty
		}
		return rooms[i].TimePressure < rooms[j].TimePressure
	})
}
