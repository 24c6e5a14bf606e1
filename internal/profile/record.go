package profile

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/abhisek/mathrooms/internal/mastery"
)

// record is the persisted form of a profile.
type record struct {
	Name  string                 `json:"name"`
	Items map[string][]roomEntry `json:"items"`
}

type roomEntry struct {
	Difficulty   int    `json:"difficulty"`
	TimePressure int    `json:"time_pressure"`
	State        string `json:"state"`
	MasteryLevel *int   `json:"mastery_level,omitempty"`
	Score        *int   `json:"score,omitempty"`
}

// Encode serializes p. Rooms are written in difficulty, then time pressure
// order so the output is stable.
func Encode(p *Profile) ([]byte, error) {
	rec := record{Name: p.Name, Items: make(map[string][]roomEntry, len(p.Items))}
	for id, g := range p.Items {
		entries := make([]roomEntry, 0, len(g))
		for _, room := range g.Rooms() {
			s := g[room]
			e := roomEntry{
				Difficulty:   room.Difficulty,
				TimePressure: room.TimePressure,
				State:        string(s.State),
			}
			if s.IsUnlocked() {
				status := mastery.UnlockedAt(room, s.Level)
				e.MasteryLevel = &status.Level
				e.Score = &status.Score
			}
			entries = append(entries, e)
		}
		rec.Items[id] = entries
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode profile %q: %w", p.Name, err)
	}
	return data, nil
}

// Decode parses a stored record. Malformed room entries and trainings are
// skipped one by one; only a record that is not a JSON object fails. The
// stored score is ignored and derived again from the level. An empty stored
// name falls back to fallbackName.
func Decode(data []byte, fallbackName string) (*Profile, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	p := New(fallbackName)
	if nameRaw, ok := raw["name"]; ok {
		var name string
		if json.Unmarshal(nameRaw, &name) == nil && name != "" {
			p.Name = name
		}
	}

	var items map[string]json.RawMessage
	if itemsRaw, ok := raw["items"]; ok {
		if json.Unmarshal(itemsRaw, &items) != nil {
			items = nil
		}
	}
	for id, itemRaw := range items {
		var entries []json.RawMessage
		if json.Unmarshal(itemRaw, &entries) != nil {
			continue
		}
		g := make(mastery.Grid)
		for _, entryRaw := range entries {
			room, status, ok := decodeEntry(entryRaw)
			if !ok {
				continue
			}
			g[room] = status
		}
		p.Items[id] = g
	}
	return p, nil
}

func decodeEntry(data json.RawMessage) (mastery.Room, mastery.Status, bool) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return mastery.Room{}, mastery.Status{}, false
	}
	d, okD := intField(fields, "difficulty")
	t, okT := intField(fields, "time_pressure")
	room := mastery.Room{Difficulty: d, TimePressure: t}
	if !okD || !okT || !room.Valid() {
		return mastery.Room{}, mastery.Status{}, false
	}

	state, _ := fields["state"].(string)
	switch mastery.State(state) {
	case mastery.StateLocked:
		return room, mastery.Locked(), true
	case mastery.StateUnlocked:
		level, ok := intField(fields, "mastery_level")
		if !ok {
			if _, present := fields["mastery_level"]; present {
				return mastery.Room{}, mastery.Status{}, false
			}
			level = 0
		}
		return room, mastery.UnlockedAt(room, level), true
	default:
		return mastery.Room{}, mastery.Status{}, false
	}
}

// intField reads an integral JSON number.
func intField(fields map[string]any, key string) (int, bool) {
	f, ok := fields[key].(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
