package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/abhisek/mathrooms/internal/grid"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// DBEnv overrides the database path.
const DBEnv = "MATHROOMS_DB"

// DefaultRefreshInterval is how often a running timer is redrawn.
const DefaultRefreshInterval = 50 * time.Millisecond

// Overrides carries command line flags. Nil fields were not set.
type Overrides struct {
	Player   *string
	Backend  *string
	DB       *string
	UsersDir *string
	Seed     *int64
}

// Settings is the resolved configuration of a run.
type Settings struct {
	Player          string
	Backend         string
	DBPath          string
	UsersDir        string
	Grid            grid.Config
	RefreshInterval time.Duration

	// Seed fixes plugin randomness when HasSeed is set.
	Seed    int64
	HasSeed bool

	LogLevel slog.Level
	LogFile  string
}

// Resolve merges flags, environment, file and defaults in that order of
// precedence and validates the result.
func Resolve(file FileConfig, ov Overrides) (Settings, error) {
	s := Settings{
		Backend:         BackendSQLite,
		DBPath:          DefaultDBPath(),
		UsersDir:        DefaultUsersDir(),
		Grid:            grid.DefaultConfig(),
		RefreshInterval: DefaultRefreshInterval,
		LogLevel:        slog.LevelInfo,
		LogFile:         DefaultLogPath(),
	}
	var errs []error

	s.Player = pick(ov.Player, file.Player.Name, "")
	s.Backend = strings.ToLower(pick(ov.Backend, file.Storage.Backend, s.Backend))
	if s.Backend != BackendSQLite && s.Backend != BackendJSON {
		errs = append(errs, fmt.Errorf("storage backend %q: want %q or %q", s.Backend, BackendSQLite, BackendJSON))
	}

	if file.Storage.DB != nil {
		s.DBPath = *file.Storage.DB
	}
	if v := os.Getenv(DBEnv); v != "" {
		s.DBPath = v
	}
	if ov.DB != nil {
		s.DBPath = *ov.DB
	}
	s.UsersDir = pick(ov.UsersDir, file.Storage.UsersDir, s.UsersDir)

	t := file.Training
	if t.RequiredStreak != nil {
		if *t.RequiredStreak < 1 {
			errs = append(errs, fmt.Errorf("training.required_streak must be at least 1, got %d", *t.RequiredStreak))
		} else {
			s.Grid.DefaultRequiredStreak = *t.RequiredStreak
		}
	}
	if t.DefaultLevels != nil {
		if *t.DefaultLevels < 1 {
			errs = append(errs, fmt.Errorf("training.default_levels must be at least 1, got %d", *t.DefaultLevels))
		} else {
			s.Grid.UnboundedLevels = *t.DefaultLevels
		}
	}
	if t.TimeLimits != nil {
		limits, err := ParseTimeLimits(t.TimeLimits)
		if err != nil {
			errs = append(errs, err)
		} else {
			s.Grid.TimeLimits = limits
		}
	}
	if t.RefreshInterval != nil {
		d, err := time.ParseDuration(*t.RefreshInterval)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("training.refresh_interval: %w", err))
		case d <= 0:
			errs = append(errs, fmt.Errorf("training.refresh_interval must be positive, got %s", d))
		default:
			s.RefreshInterval = d
		}
	}
	if t.Seed != nil {
		s.Seed, s.HasSeed = *t.Seed, true
	}
	if ov.Seed != nil {
		s.Seed, s.HasSeed = *ov.Seed, true
	}

	if file.Log.Level != nil {
		if err := s.LogLevel.UnmarshalText([]byte(*file.Log.Level)); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}
	if file.Log.File != nil {
		s.LogFile = *file.Log.File
	}

	if err := errors.Join(errs...); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ParseTimeLimits parses one tier per entry. "none" and "0" mean no timer.
func ParseTimeLimits(raw []string) ([]time.Duration, error) {
	if len(raw) == 0 {
		return nil, errors.New("training.time_limits must not be empty")
	}
	out := make([]time.Duration, 0, len(raw))
	for i, r := range raw {
		r = strings.TrimSpace(strings.ToLower(r))
		if r == "none" || r == "0" || r == "" {
			out = append(out, 0)
			continue
		}
		d, err := time.ParseDuration(r)
		if err != nil {
			return nil, fmt.Errorf("training.time_limits[%d]: %w", i, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("training.time_limits[%d]: negative duration %s", i, d)
		}
		out = append(out, d)
	}
	return out, nil
}

func pick(flag, file *string, def string) string {
	if flag != nil && *flag != "" {
		return *flag
	}
	if file != nil && *file != "" {
		return *file
	}
	return def
}
