// Package ladder implements the training select screen: the list of
// registered trainings with the player's score in each.
package ladder

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/abhisek/mathrooms/internal/grid"
	"github.com/abhisek/mathrooms/internal/mastery"
	"github.com/abhisek/mathrooms/internal/plugin"
	"github.com/abhisek/mathrooms/internal/profile"
	"github.com/abhisek/mathrooms/internal/session"
)

// Direction moves the selection.
type Direction int

const (
	Up Direction = iota
	Down
)

// Item is one row of the select list.
type Item struct {
	TrainingID  string
	Label       string
	Description string
	Icon        string
	Score       int
}

// View is a snapshot of the select screen.
type View struct {
	Title      string
	PlayerName string
	TotalScore int
	Items      []Item
	Selected   int
}

// Equal reports whether two snapshots render identically.
func (v View) Equal(o View) bool {
	if v.Title != o.Title || v.PlayerName != o.PlayerName || v.TotalScore != o.TotalScore ||
		v.Selected != o.Selected || len(v.Items) != len(o.Items) {
		return false
	}
	for i := range v.Items {
		if v.Items[i] != o.Items[i] {
			return false
		}
	}
	return true
}

// EventLog receives every level-up after the profile was saved.
type EventLog func(ctx context.Context, player string, up grid.LevelUp) error

// Option configures a Select.
type Option func(*Select)

// WithGridConfig sets the grid configuration used by Enter.
func WithGridConfig(cfg grid.Config) Option {
	return func(s *Select) { s.gridCfg = cfg }
}

// WithSeeder sets the source of randomness handed to new plugins.
func WithSeeder(f func() *rand.Rand) Option {
	return func(s *Select) { s.seeder = f }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Select) { s.log = l }
}

// WithEventLog appends every level-up to an event log.
func WithEventLog(l EventLog) Option {
	return func(s *Select) { s.events = l }
}

// WithGridOptions passes options to every grid the select screen builds.
func WithGridOptions(opts ...grid.Option) Option {
	return func(s *Select) { s.gridOpts = append(s.gridOpts, opts...) }
}

// Select owns the player's profile for the lifetime of a training run. It is
// not safe for concurrent use.
type Select struct {
	registry *plugin.Registry
	repo     profile.Repo
	profile  *profile.Profile
	gridCfg  grid.Config
	gridOpts []grid.Option
	seeder   func() *rand.Rand
	log      *slog.Logger
	events   EventLog

	selected int
	view     View
}

// New loads the named player's profile and builds the select screen. A
// profile that cannot be loaded is replaced by a fresh one.
func New(ctx context.Context, reg *plugin.Registry, repo profile.Repo, name string, opts ...Option) *Select {
	s := &Select{
		registry: reg,
		repo:     repo,
		gridCfg:  grid.DefaultConfig(),
		log:      slog.New(slog.DiscardHandler),
		seeder: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	p, err := repo.Load(ctx, name)
	if err != nil {
		s.log.Warn("profile unreadable, starting fresh", "player", name, "error", err)
		p = profile.New(name)
	}
	s.profile = p
	s.rebuild()
	return s
}

// Profile returns the player's profile.
func (s *Select) Profile() *profile.Profile { return s.profile }

// View returns the current snapshot.
func (s *Select) View() View { return s.view }

// Selected returns the index of the selected training.
func (s *Select) Selected() int { return s.selected }

// Move changes the selection, clamped to the list.
func (s *Select) Move(dir Direction) bool {
	next := s.selected
	switch dir {
	case Up:
		next--
	case Down:
		next++
	}
	if next < 0 || next >= s.registry.Len() || next == s.selected {
		return false
	}
	s.selected = next
	s.rebuild()
	return true
}

// Enter builds a fresh plugin instance and the grid for the selected
// training, seeded from the stored rooms.
func (s *Select) Enter() (*grid.Grid, error) {
	factories := s.registry.All()
	if len(factories) == 0 {
		return nil, fmt.Errorf("no trainings registered")
	}
	f := factories[s.selected]
	info := f.Info()

	p, err := f.New(s.seeder())
	if err != nil {
		s.log.Error("plugin instantiation failed", "training", info.ID, "error", err)
		return nil, fmt.Errorf("start %s: %w", info.ID, err)
	}

	opts := append([]grid.Option{
		grid.WithSaver(s),
		grid.WithLogger(s.log),
		grid.WithSessionOptions(session.WithLogger(s.log)),
	}, s.gridOpts...)
	return grid.New(info, p, s.profile.Rooms(info.ID), s.gridCfg, opts...), nil
}

// SaveProgress stores the rooms of a training and writes the full profile.
// Failures are logged and not retried.
func (s *Select) SaveProgress(trainingID string, rooms mastery.Grid, up grid.LevelUp) {
	ctx := context.Background()
	s.profile.SetRooms(trainingID, rooms)
	if err := s.repo.Save(ctx, s.profile); err != nil {
		s.log.Error("profile save failed", "player", s.profile.Name, "training", trainingID, "error", err)
	}
	if s.events != nil {
		if err := s.events(ctx, s.profile.Name, up); err != nil {
			s.log.Warn("mastery event not recorded", "player", s.profile.Name, "error", err)
		}
	}
	s.rebuild()
}

func (s *Select) rebuild() {
	factories := s.registry.All()
	items := make([]Item, 0, len(factories))
	for _, f := range factories {
		info := f.Info()
		items = append(items, Item{
			TrainingID:  info.ID,
			Label:       info.Name,
			Description: info.Description,
			Icon:        info.Icon.Text(),
			Score:       s.profile.TrainingScore(info.ID),
		})
	}
	s.view = View{
		Title:      "Choose a training",
		PlayerName: s.profile.Name,
		TotalScore: s.profile.TotalScore(),
		Items:      items,
		Selected:   s.selected,
	}
}
