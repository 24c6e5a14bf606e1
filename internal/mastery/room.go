package mastery

import "fmt"

// MaxLevel is the highest mastery level a room can reach.
const MaxLevel = 10

// DefaultRequiredStreak is the streak length that earns one mastery level
// when neither the plugin nor the chapter overrides it.
const DefaultRequiredStreak = 5

// Room is a (difficulty, time pressure) coordinate in a training grid.
// Both axes start at 1.
type Room struct {
	Difficulty   int
	TimePressure int
}

func (r Room) String() string {
	return fmt.Sprintf("(%d,%d)", r.Difficulty, r.TimePressure)
}

// Valid reports whether both coordinates are positive.
func (r Room) Valid() bool {
	return r.Difficulty >= 1 && r.TimePressure >= 1
}

// Weight is the score multiplier of the room.
func (r Room) Weight() int {
	return r.Difficulty * r.TimePressure
}

// State tells whether a room can be entered.
type State string

const (
	StateLocked   State = "locked"
	StateUnlocked State = "unlocked"
)

// Status is the per-room record kept in a Grid. Level and Score are only
// meaningful when State is StateUnlocked.
type Status struct {
	State State
	Level int
	Score int
}

// Locked returns the status of a room that cannot be entered yet.
func Locked() Status {
	return Status{State: StateLocked}
}

// UnlockedAt returns the unlocked status of room at the given mastery level.
// The level is clamped to [0, MaxLevel] and the score derived from it.
func UnlockedAt(room Room, level int) Status {
	level = ClampLevel(level)
	return Status{
		State: StateUnlocked,
		Level: level,
		Score: room.Weight() * level,
	}
}

// IsUnlocked reports whether the room can be entered.
func (s Status) IsUnlocked() bool {
	return s.State == StateUnlocked
}

// ClampLevel limits a mastery level to [0, MaxLevel].
func ClampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// LevelFor returns the mastery level earned by a highest streak when every
// streakToAdvance correct answers in a row earn one level.
func LevelFor(highestStreak, streakToAdvance int) int {
	if streakToAdvance < 1 {
		streakToAdvance = 1
	}
	if highestStreak < 0 {
		return 0
	}
	return ClampLevel(highestStreak / streakToAdvance)
}
