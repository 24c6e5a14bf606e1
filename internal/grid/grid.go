// Package grid implements the training grid of one plugin: rooms laid out by
// difficulty (x) and time pressure (y) that unlock as the player masters them.
package grid

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/mathrooms/internal/mastery"
	"github.com/abhisek/mathrooms/internal/plugin"
	"github.com/abhisek/mathrooms/internal/session"
)

// DefaultUnboundedLevels is the grid width for plugins without a level limit.
const DefaultUnboundedLevels = 25

// DefaultTimeLimits are the time-pressure rows from relaxed to strict.
// Zero means no timer.
var DefaultTimeLimits = []time.Duration{
	0,
	20 * time.Second,
	15 * time.Second,
	10 * time.Second,
	7 * time.Second,
	5 * time.Second,
}

// Config holds the grid settings shared by all plugins.
type Config struct {
	TimeLimits            []time.Duration
	DefaultRequiredStreak int
	UnboundedLevels       int
}

// DefaultConfig returns the built-in grid settings.
func DefaultConfig() Config {
	return Config{
		TimeLimits:            append([]time.Duration(nil), DefaultTimeLimits...),
		DefaultRequiredStreak: mastery.DefaultRequiredStreak,
		UnboundedLevels:       DefaultUnboundedLevels,
	}
}

func (c Config) normalized() Config {
	if len(c.TimeLimits) == 0 {
		c.TimeLimits = DefaultTimeLimits
	}
	if c.DefaultRequiredStreak < 1 {
		c.DefaultRequiredStreak = mastery.DefaultRequiredStreak
	}
	if c.UnboundedLevels < 1 {
		c.UnboundedLevels = DefaultUnboundedLevels
	}
	return c
}

// Direction is a move on the grid.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

func (d Direction) apply(r mastery.Room) mastery.Room {
	switch d {
	case Left:
		r.Difficulty--
	case Right:
		r.Difficulty++
	case Up:
		r.TimePressure--
	case Down:
		r.TimePressure++
	}
	return r
}

// LevelUp describes a recorded mastery increase.
type LevelUp struct {
	TrainingID string
	Room       mastery.Room
	From, To   int
	SessionID  string
}

// Saver persists the full room grid of a training after every level-up.
type Saver interface {
	SaveProgress(trainingID string, rooms mastery.Grid, up LevelUp)
}

// Option configures a Grid.
type Option func(*Grid)

// WithSaver sets where progress is persisted.
func WithSaver(s Saver) Option {
	return func(g *Grid) { g.saver = s }
}

// WithLogger sets the logger for level-ups.
func WithLogger(l *slog.Logger) Option {
	return func(g *Grid) { g.log = l }
}

// WithSessionOptions passes options to every session the grid starts.
func WithSessionOptions(opts ...session.Option) Option {
	return func(g *Grid) { g.sessionOpts = append(g.sessionOpts, opts...) }
}

// Grid tracks unlocked and mastered rooms for one plugin. It is not safe for
// concurrent use.
type Grid struct {
	info        plugin.Info
	plugin      plugin.Plugin
	cfg         Config
	saver       Saver
	log         *slog.Logger
	sessionOpts []session.Option

	width, height int
	unlocked      map[mastery.Room]bool
	levels        map[mastery.Room]int
	current       mastery.Room

	view View
}

// New builds the grid for a plugin, restoring the stored rooms. Room (1,1)
// is always unlocked.
func New(info plugin.Info, p plugin.Plugin, stored mastery.Grid, cfg Config, opts ...Option) *Grid {
	cfg = cfg.normalized()
	g := &Grid{
		info:     info,
		plugin:   p,
		cfg:      cfg,
		log:      slog.New(slog.DiscardHandler),
		width:    info.Mode.LevelCount(cfg.UnboundedLevels),
		height:   len(cfg.TimeLimits),
		unlocked: make(map[mastery.Room]bool),
		levels:   make(map[mastery.Room]int),
		current:  mastery.Room{Difficulty: 1, TimePressure: 1},
	}
	for _, opt := range opts {
		opt(g)
	}

	for room, status := range stored {
		if !room.Valid() || !status.IsUnlocked() {
			continue
		}
		g.unlocked[room] = true
		if lvl := mastery.ClampLevel(status.Level); lvl > 0 {
			g.levels[room] = lvl
		}
	}
	g.unlocked[g.current] = true
	g.rebuild()
	return g
}

// Info returns the plugin description.
func (g *Grid) Info() plugin.Info { return g.info }

// Size returns the number of difficulty columns and time-pressure rows.
func (g *Grid) Size() (width, height int) { return g.width, g.height }

// Current returns the selected room.
func (g *Grid) Current() mastery.Room { return g.current }

// View returns the current snapshot.
func (g *Grid) View() View { return g.view }

// Level returns the mastery level recorded for room.
func (g *Grid) Level(room mastery.Room) int { return g.levels[room] }

func (g *Grid) inBounds(r mastery.Room) bool {
	return r.Difficulty >= 1 && r.Difficulty <= g.width &&
		r.TimePressure >= 1 && r.TimePressure <= g.height
}

// open reports whether the player may stand in room.
func (g *Grid) open(r mastery.Room) bool {
	return g.unlocked[r] || g.levels[r] > 0
}

// Move selects the neighbouring room in dir. Moves off the grid or into a
// locked room are ignored and reported as false.
func (g *Grid) Move(dir Direction) bool {
	next := dir.apply(g.current)
	if !g.inBounds(next) || !g.open(next) {
		return false
	}
	g.current = next
	g.rebuild()
	return true
}

// levelIndex maps the current difficulty to the plugin's level index.
func (g *Grid) levelIndex(r mastery.Room) int {
	return max(0, min(r.Difficulty-1, g.width-1))
}

// RequiredStreak returns the streak per mastery level for a level index:
// the chapter override, else the plugin override, else the default.
func (g *Grid) RequiredStreak(levelIndex int) int {
	if n := g.info.Mode.RequiredStreak(levelIndex); n > 0 {
		return n
	}
	if g.info.RequiredStreak > 0 {
		return g.info.RequiredStreak
	}
	return g.cfg.DefaultRequiredStreak
}

// TimeLimit returns the time limit of a time-pressure row, clamped to the
// configured rows. Zero means no timer.
func (g *Grid) TimeLimit(timePressure int) time.Duration {
	i := max(0, min(timePressure-1, len(g.cfg.TimeLimits)-1))
	return g.cfg.TimeLimits[i]
}

// Enter starts a question session in the current room.
func (g *Grid) Enter() *Attempt {
	room := g.current
	idx := g.levelIndex(room)
	streak := g.RequiredStreak(idx)
	s := session.New(g.plugin, session.Config{
		Level:                idx,
		StreakToAdvance:      streak,
		InitialHighestStreak: g.levels[room] * streak,
		TimeLimit:            g.TimeLimit(room.TimePressure),
		ScoreWeight:          room.Weight(),
	}, g.sessionOpts...)
	g.log.Debug("room entered", "training", g.info.ID, "room", room.String(), "session", s.ID())
	return &Attempt{grid: g, room: room, session: s}
}

// RecordMastery raises the mastery level of room. It returns false and
// changes nothing when level does not exceed the recorded one.
//
// A raise unlocks the next room in both directions and credits every room
// with lower or equal difficulty and time pressure with at least the same
// level. The full grid is then saved.
func (g *Grid) RecordMastery(room mastery.Room, level int) bool {
	return g.record(room, level, "")
}

func (g *Grid) record(room mastery.Room, level int, sessionID string) bool {
	if !g.inBounds(room) {
		return false
	}
	level = mastery.ClampLevel(level)
	prev := g.levels[room]
	if level <= prev {
		return false
	}

	g.levels[room] = level
	g.unlocked[room] = true

	for _, next := range []mastery.Room{
		{Difficulty: room.Difficulty + 1, TimePressure: room.TimePressure},
		{Difficulty: room.Difficulty, TimePressure: room.TimePressure + 1},
	} {
		if g.inBounds(next) && !g.open(next) {
			g.unlocked[next] = true
		}
	}

	for d := 1; d <= room.Difficulty; d++ {
		for t := 1; t <= room.TimePressure; t++ {
			r := mastery.Room{Difficulty: d, TimePressure: t}
			g.unlocked[r] = true
			if g.levels[r] < level {
				g.levels[r] = level
			}
		}
	}

	g.rebuild()
	g.log.Info("mastery recorded",
		"training", g.info.ID, "room", room.String(), "from", prev, "to", level)

	if g.saver != nil {
		g.saver.SaveProgress(g.info.ID, g.Snapshot(), LevelUp{
			TrainingID: g.info.ID,
			Room:       room,
			From:       prev,
			To:         level,
			SessionID:  sessionID,
		})
	}
	return true
}

// Snapshot returns the persistable state: every open room with its level.
func (g *Grid) Snapshot() mastery.Grid {
	out := make(mastery.Grid, len(g.unlocked))
	for r := range g.unlocked {
		out[r] = mastery.UnlockedAt(r, g.levels[r])
	}
	for r, lvl := range g.levels {
		if lvl > 0 {
			out[r] = mastery.UnlockedAt(r, lvl)
		}
	}
	return out
}

// FormatTimeLimit renders a time limit for the hint line.
func FormatTimeLimit(d time.Duration) string {
	if d <= 0 {
		return "No timer"
	}
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", int(d/time.Second))
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// NavigationHelp is appended to every hint.
const NavigationHelp = "Arrows to move, Enter to start, Esc to go back"

// hint describes the current room. Unbounded difficulty ladders have no real
// level count, so the (i/N) part is left out for them.
func (g *Grid) hint() string {
	idx := g.levelIndex(g.current)
	level := g.info.Mode.Label(idx)
	if g.info.Mode.Kind == plugin.ModeChapters || g.info.Mode.Levels > 0 {
		level = fmt.Sprintf("%s (%d/%d)", level, idx+1, g.width)
	}
	return fmt.Sprintf("%s · Time limit: %s · %s",
		level, FormatTimeLimit(g.TimeLimit(g.current.TimePressure)), NavigationHelp)
}
