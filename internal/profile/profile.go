// Package profile stores each player's progress: one room grid per training,
// keyed by a sanitized form of the player's name.
package profile

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/abhisek/mathrooms/internal/mastery"
)

// DefaultKey is used for names without any usable character.
const DefaultKey = "player"

// ErrNotFound is returned when deleting a profile that does not exist.
var ErrNotFound = errors.New("profile not found")

// Profile is the progress of one player.
type Profile struct {
	Name  string
	Items map[string]mastery.Grid
}

// New returns an empty profile.
func New(name string) *Profile {
	return &Profile{Name: name, Items: make(map[string]mastery.Grid)}
}

// Key derives the storage key of a name: letters, digits, '-' and '_' of the
// trimmed name, or DefaultKey when nothing is left.
func Key(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DefaultKey
	}
	return b.String()
}

// Key returns the storage key of the profile.
func (p *Profile) Key() string { return Key(p.Name) }

// Rooms returns the stored grid of a training, nil if none.
func (p *Profile) Rooms(trainingID string) mastery.Grid {
	return p.Items[trainingID]
}

// SetRooms replaces the stored grid of a training with a copy of rooms.
func (p *Profile) SetRooms(trainingID string, rooms mastery.Grid) {
	if p.Items == nil {
		p.Items = make(map[string]mastery.Grid)
	}
	p.Items[trainingID] = rooms.Clone()
}

// TrainingScore returns the score of one training.
func (p *Profile) TrainingScore(trainingID string) int {
	return p.Items[trainingID].Score()
}

// TotalScore sums the scores of all trainings.
func (p *Profile) TotalScore() int {
	total := 0
	for _, g := range p.Items {
		total += g.Score()
	}
	return total
}

// Repo loads and saves profiles.
type Repo interface {
	// Load returns the stored profile for name, or a new empty profile when
	// none is stored. Unreadable records are returned as errors.
	Load(ctx context.Context, name string) (*Profile, error)

	// Save overwrites the stored profile with the full state of p.
	Save(ctx context.Context, p *Profile) error

	// List returns every readable stored profile.
	List(ctx context.Context) ([]*Profile, error)

	// Delete removes the stored profile for name.
	Delete(ctx context.Context, name string) error
}
