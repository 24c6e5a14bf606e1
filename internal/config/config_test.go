package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func ptr[T any](v T) *T { return &v }

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Player.Name)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := writeConfig(t, "[training]\nstreak = 3\n")
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "training.streak")
}

func TestResolve_Defaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv(DBEnv, "")

	s, err := Resolve(FileConfig{}, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, s.Backend)
	assert.Equal(t, filepath.Join("/data", "mathrooms", "mathrooms.db"), s.DBPath)
	assert.Equal(t, filepath.Join("/data", "mathrooms", "users"), s.UsersDir)
	assert.Equal(t, 5, s.Grid.DefaultRequiredStreak)
	assert.Len(t, s.Grid.TimeLimits, 6)
	assert.Equal(t, DefaultRefreshInterval, s.RefreshInterval)
	assert.False(t, s.HasSeed)
	assert.Equal(t, slog.LevelInfo, s.LogLevel)
}

func TestResolve_FileValues(t *testing.T) {
	t.Setenv(DBEnv, "")
	path := writeConfig(t, `
[player]
name = "Alice"

[storage]
backend = "json"
users_dir = "/tmp/users"

[training]
required_streak = 3
default_levels = 12
time_limits = ["none", "30s", "2.5s"]
refresh_interval = "100ms"
seed = 42

[log]
level = "debug"
file = "/tmp/m.log"
`)
	file, err := LoadConfig(path)
	require.NoError(t, err)

	s, err := Resolve(file, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "Alice", s.Player)
	assert.Equal(t, BackendJSON, s.Backend)
	assert.Equal(t, "/tmp/users", s.UsersDir)
	assert.Equal(t, 3, s.Grid.DefaultRequiredStreak)
	assert.Equal(t, 12, s.Grid.UnboundedLevels)
	assert.Equal(t, []time.Duration{0, 30 * time.Second, 2500 * time.Millisecond}, s.Grid.TimeLimits)
	assert.Equal(t, 100*time.Millisecond, s.RefreshInterval)
	assert.True(t, s.HasSeed)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, slog.LevelDebug, s.LogLevel)
	assert.Equal(t, "/tmp/m.log", s.LogFile)
}

func TestResolve_Precedence(t *testing.T) {
	file := FileConfig{
		Player:  PlayerConfig{Name: ptr("FromFile")},
		Storage: StorageConfig{DB: ptr("/file.db")},
	}

	t.Setenv(DBEnv, "/env.db")
	s, err := Resolve(file, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "/env.db", s.DBPath)
	assert.Equal(t, "FromFile", s.Player)

	s, err = Resolve(file, Overrides{DB: ptr("/flag.db"), Player: ptr("Flag"), Seed: ptr(int64(7))})
	require.NoError(t, err)
	assert.Equal(t, "/flag.db", s.DBPath)
	assert.Equal(t, "Flag", s.Player)
	assert.Equal(t, int64(7), s.Seed)
}

func TestResolve_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		file FileConfig
		ov   Overrides
		want string
	}{
		{"backend", FileConfig{}, Overrides{Backend: ptr("redis")}, "storage backend"},
		{"streak", FileConfig{Training: TrainingConfig{RequiredStreak: ptr(0)}}, Overrides{}, "required_streak"},
		{"levels", FileConfig{Training: TrainingConfig{DefaultLevels: ptr(-1)}}, Overrides{}, "default_levels"},
		{"empty tiers", FileConfig{Training: TrainingConfig{TimeLimits: []string{}}}, Overrides{}, "must not be empty"},
		{"bad tier", FileConfig{Training: TrainingConfig{TimeLimits: []string{"fast"}}}, Overrides{}, "time_limits[0]"},
		{"refresh", FileConfig{Training: TrainingConfig{RefreshInterval: ptr("0s")}}, Overrides{}, "refresh_interval"},
		{"log level", FileConfig{Log: LogConfig{Level: ptr("loud")}}, Overrides{}, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.file, tt.ov)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
