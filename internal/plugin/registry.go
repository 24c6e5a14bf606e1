package plugin

import (
	"errors"
	"fmt"
)

// Registry is the ordered set of available plugins.
type Registry struct {
	factories []Factory
	byID      map[string]Factory
}

// NewRegistry validates the factories and returns them as a registry.
// Duplicate or empty IDs and chapter modes without chapters are rejected.
func NewRegistry(factories ...Factory) (*Registry, error) {
	r := &Registry{byID: make(map[string]Factory, len(factories))}
	var errs []error
	for _, f := range factories {
		if f == nil {
			errs = append(errs, errors.New("nil plugin factory"))
			continue
		}
		info := f.Info()
		if err := validateInfo(info); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := r.byID[info.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate plugin id %q", info.ID))
			continue
		}
		r.byID[info.ID] = f
		r.factories = append(r.factories, f)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("plugin registry: %w", errors.Join(errs...))
	}
	return r, nil
}

func validateInfo(info Info) error {
	if info.ID == "" {
		return fmt.Errorf("plugin %q has an empty id", info.Name)
	}
	if info.RequiredStreak < 0 {
		return fmt.Errorf("plugin %q: negative required streak", info.ID)
	}
	switch info.Mode.Kind {
	case ModeChapters:
		if len(info.Mode.Chapters) == 0 {
			return fmt.Errorf("plugin %q: chapter mode without chapters", info.ID)
		}
		for i, ch := range info.Mode.Chapters {
			if ch.Name == "" {
				return fmt.Errorf("plugin %q: chapter %d has no name", info.ID, i+1)
			}
		}
	case ModeDifficulty:
		if info.Mode.Levels < 0 {
			return fmt.Errorf("plugin %q: negative level count", info.ID)
		}
	default:
		return fmt.Errorf("plugin %q: unknown mode %d", info.ID, info.Mode.Kind)
	}
	return nil
}

// All returns the factories in registration order.
func (r *Registry) All() []Factory {
	out := make([]Factory, len(r.factories))
	copy(out, r.factories)
	return out
}

// Lookup returns the factory registered under id.
func (r *Registry) Lookup(id string) (Factory, bool) {
	f, ok := r.byID[id]
	return f, ok
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	return len(r.factories)
}
