package profile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathrooms/internal/mastery"
)

func room(d, t int) mastery.Room {
	return mastery.Room{Difficulty: d, TimePressure: t}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"Alice", "Alice"},
		{"  Bob Smith ", "BobSmith"},
		{"Åsa-Lill_2", "Åsa-Lill_2"},
		{"../../etc/passwd", "etcpasswd"},
		{"   ", DefaultKey},
		{"!!!", DefaultKey},
	}
	for _, tt := range tests {
		if got := Key(tt.name); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestProfile_Scores(t *testing.T) {
	p := New("Alice")
	p.SetRooms("plus", mastery.Grid{
		room(1, 1): mastery.UnlockedAt(room(1, 1), 2),
		room(2, 3): mastery.UnlockedAt(room(2, 3), 1),
		room(3, 3): mastery.Locked(),
	})
	p.SetRooms("minus", mastery.Grid{room(1, 1): mastery.UnlockedAt(room(1, 1), 1)})

	assert.Equal(t, 8, p.TrainingScore("plus"))
	assert.Equal(t, 1, p.TrainingScore("minus"))
	assert.Equal(t, 0, p.TrainingScore("unknown"))
	assert.Equal(t, 9, p.TotalScore())
}

func TestEncodeDecode_RoundTripsUnlockedRooms(t *testing.T) {
	p := New("Alice")
	p.SetRooms("plus", mastery.Grid{
		room(1, 1): mastery.UnlockedAt(room(1, 1), 3),
		room(2, 1): mastery.UnlockedAt(room(2, 1), 0),
		room(3, 1): mastery.Locked(),
	})

	data, err := Encode(p)
	require.NoError(t, err)
	got, err := Decode(data, "ignored")
	require.NoError(t, err)

	assert.Equal(t, "Alice", got.Name)
	g := got.Rooms("plus")
	assert.Equal(t, mastery.UnlockedAt(room(1, 1), 3), g[room(1, 1)])
	assert.Equal(t, mastery.UnlockedAt(room(2, 1), 0), g[room(2, 1)])
	assert.Equal(t, 3, got.TrainingScore("plus"))
}

func TestEncode_Format(t *testing.T) {
	p := New("Alice")
	p.SetRooms("plus", mastery.Grid{
		room(2, 1): mastery.UnlockedAt(room(2, 1), 1),
		room(1, 1): mastery.UnlockedAt(room(1, 1), 2),
	})
	data, err := Encode(p)
	require.NoError(t, err)

	var rec struct {
		Name  string                      `json:"name"`
		Items map[string][]map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &rec))
	require.Len(t, rec.Items["plus"], 2)
	first := rec.Items["plus"][0]
	assert.Equal(t, float64(1), first["difficulty"])
	assert.Equal(t, float64(1), first["time_pressure"])
	assert.Equal(t, "unlocked", first["state"])
	assert.Equal(t, float64(2), first["mastery_level"])
	assert.Equal(t, float64(2), first["score"])
}

func TestDecode_SkipsMalformedEntries(t *testing.T) {
	data := []byte(`{
		"name": "Bob",
		"items": {
			"plus": [
				{"difficulty": 1, "time_pressure": 1, "state": "unlocked", "mastery_level": 2, "score": 999},
				{"difficulty": 0, "time_pressure": 1, "state": "unlocked", "mastery_level": 1},
				{"difficulty": "2", "time_pressure": 1, "state": "unlocked"},
				{"difficulty": 2, "time_pressure": 1, "state": "sleeping"},
				{"difficulty": 2, "time_pressure": 2, "state": "unlocked", "mastery_level": "high"},
				{"difficulty": 1.5, "time_pressure": 1, "state": "locked"},
				"garbage",
				{"difficulty": 3, "time_pressure": 1, "state": "unlocked", "mastery_level": 15},
				{"difficulty": 1, "time_pressure": 2, "state": "unlocked"}
			],
			"minus": "not a list"
		}
	}`)
	p, err := Decode(data, "fallback")
	require.NoError(t, err)
	assert.Equal(t, "Bob", p.Name)

	g := p.Rooms("plus")
	assert.Len(t, g, 3)
	assert.Equal(t, mastery.UnlockedAt(room(1, 1), 2), g[room(1, 1)], "stored score is recomputed")
	assert.Equal(t, 10, g[room(3, 1)].Level, "level is capped")
	assert.Equal(t, 0, g[room(1, 2)].Level)
	_, ok := p.Items["minus"]
	assert.False(t, ok)
}

func TestDecode_RejectsNonObject(t *testing.T) {
	_, err := Decode([]byte(`[1,2,3]`), "x")
	assert.Error(t, err)
	_, err = Decode([]byte(`{`), "x")
	assert.Error(t, err)
}

func TestDecode_FallbackName(t *testing.T) {
	p, err := Decode([]byte(`{"items": {}}`), "Carol")
	require.NoError(t, err)
	assert.Equal(t, "Carol", p.Name)
}

func TestFileRepo_LoadMissingIsFresh(t *testing.T) {
	repo := NewFileRepo(filepath.Join(t.TempDir(), "users"))
	p, err := repo.Load(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
	assert.Empty(t, p.Items)
}

func TestFileRepo_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepo(filepath.Join(t.TempDir(), "users"))

	p := New("Alice Smith")
	p.SetRooms("plus", mastery.Grid{room(1, 1): mastery.UnlockedAt(room(1, 1), 1)})
	require.NoError(t, repo.Save(ctx, p))

	_, err := os.Stat(filepath.Join(repo.Dir(), "AliceSmith.json"))
	require.NoError(t, err)

	got, err := repo.Load(ctx, "Alice Smith")
	require.NoError(t, err)
	assert.Equal(t, p.Items, got.Items)

	p.SetRooms("plus", mastery.Grid{room(1, 1): mastery.UnlockedAt(room(1, 1), 4)})
	require.NoError(t, repo.Save(ctx, p))
	got, err = repo.Load(ctx, "Alice Smith")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rooms("plus").Level(room(1, 1)), "save overwrites")

	entries, err := os.ReadDir(repo.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileRepo_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Alice.json"), []byte("{nope"), 0o644))

	repo := NewFileRepo(dir)
	_, err := repo.Load(context.Background(), "Alice")
	assert.Error(t, err)
}

func TestFileRepo_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewFileRepo(dir)

	a := New("Alice")
	a.SetRooms("plus", mastery.Grid{room(1, 1): mastery.UnlockedAt(room(1, 1), 1)})
	b := New("Bob")
	b.SetRooms("plus", mastery.Grid{room(2, 2): mastery.UnlockedAt(room(2, 2), 3)})
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bob", list[0].Name)
	assert.Equal(t, "Alice", list[1].Name)

	require.NoError(t, repo.Delete(ctx, "Bob"))
	assert.ErrorIs(t, repo.Delete(ctx, "Bob"), ErrNotFound)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFileRepo_ListMissingDir(t *testing.T) {
	repo := NewFileRepo(filepath.Join(t.TempDir(), "nope"))
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
