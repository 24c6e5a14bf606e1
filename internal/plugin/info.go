package plugin

import "fmt"

// ModeKind selects how a plugin's horizontal axis is organized.
type ModeKind int

const (
	ModeDifficulty ModeKind = iota
	ModeChapters
)

// Chapter is a named content unit. RequiredStreak overrides the streak needed
// per mastery level when positive.
type Chapter struct {
	Name           string
	RequiredStreak int
}

// Mode is either a numeric difficulty ladder or an ordered chapter list.
type Mode struct {
	Kind ModeKind

	// Levels is the number of difficulty levels. Zero means unbounded.
	Levels int

	Chapters []Chapter
}

// Difficulty returns a difficulty mode with the given number of levels
// (0 for unbounded).
func Difficulty(levels int) Mode {
	return Mode{Kind: ModeDifficulty, Levels: levels}
}

// Chapters returns a chapter mode.
func Chapters(chapters ...Chapter) Mode {
	return Mode{Kind: ModeChapters, Chapters: chapters}
}

// LevelCount returns the width of the grid for this mode. Unbounded
// difficulty ladders use unboundedLevels.
func (m Mode) LevelCount(unboundedLevels int) int {
	switch m.Kind {
	case ModeChapters:
		return len(m.Chapters)
	default:
		if m.Levels > 0 {
			return m.Levels
		}
		if unboundedLevels < 1 {
			return 1
		}
		return unboundedLevels
	}
}

// Label names the zero-based level or chapter index.
func (m Mode) Label(index int) string {
	if m.Kind == ModeChapters && index >= 0 && index < len(m.Chapters) {
		return m.Chapters[index].Name
	}
	return fmt.Sprintf("Level %d", index+1)
}

// RequiredStreak returns the chapter override for index, 0 when none.
func (m Mode) RequiredStreak(index int) int {
	if m.Kind != ModeChapters || index < 0 || index >= len(m.Chapters) {
		return 0
	}
	return m.Chapters[index].RequiredStreak
}

// Icon is shown next to the training name. Emoji wins over Path.
type Icon struct {
	Emoji string
	Path  string
}

// Text returns a printable form of the icon.
func (i Icon) Text() string {
	if i.Emoji != "" {
		return i.Emoji
	}
	return i.Path
}

// AnswerKey is a key that submits the typed answer.
type AnswerKey string

const (
	KeyEnter AnswerKey = "enter"
	KeySpace AnswerKey = "space"
)

// DefaultAnswerKeys are used when a plugin does not restrict them.
var DefaultAnswerKeys = []AnswerKey{KeyEnter, KeySpace}

// Info is the static description of a plugin.
type Info struct {
	ID          string
	Name        string
	Description string
	Icon        Icon
	Mode        Mode

	// RequiredStreak overrides the default streak per mastery level when positive.
	RequiredStreak int

	// AnswerKeys restricts which keys submit an answer. Empty means DefaultAnswerKeys.
	AnswerKeys []AnswerKey
}

// Keys returns the effective answer keys.
func (i Info) Keys() []AnswerKey {
	if len(i.AnswerKeys) == 0 {
		return DefaultAnswerKeys
	}
	return i.AnswerKeys
}

// Accepts reports whether key submits an answer for this plugin.
func (i Info) Accepts(key AnswerKey) bool {
	for _, k := range i.Keys() {
		if k == key {
			return true
		}
	}
	return false
}
