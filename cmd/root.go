package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathrooms/internal/config"
	"github.com/abhisek/mathrooms/internal/logging"
	"github.com/abhisek/mathrooms/internal/profile"
	"github.com/abhisek/mathrooms/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathrooms",
	Short: "Quiz trainer for kids",
	Long: "Mathrooms is a terminal quiz trainer for kids. Every training is a grid of rooms:\n" +
		"harder questions to the right, less time to answer further down.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/mathrooms/config.toml)")
	pf.String("db", "", "Path to SQLite database file (overrides MATHROOMS_DB env var)")
	pf.String("store", "", "Profile storage backend: sqlite or json")
	pf.String("users-dir", "", "Directory of the json profile store")
	pf.String("player", "", "Player name to pre-fill")
	pf.Int64("seed", 0, "Fixed random seed for question generation")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(trainingsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettings reads the config file and applies the persistent flags.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	file, err := config.LoadConfig(path)
	if err != nil {
		return config.Settings{}, err
	}

	var ov config.Overrides
	flags := cmd.Flags()
	if flags.Changed("db") {
		v, _ := flags.GetString("db")
		ov.DB = &v
	}
	if flags.Changed("store") {
		v, _ := flags.GetString("store")
		ov.Backend = &v
	}
	if flags.Changed("users-dir") {
		v, _ := flags.GetString("users-dir")
		ov.UsersDir = &v
	}
	if flags.Changed("player") {
		v, _ := flags.GetString("player")
		ov.Player = &v
	}
	if flags.Changed("seed") {
		v, _ := flags.GetInt64("seed")
		ov.Seed = &v
	}

	s, err := config.Resolve(file, ov)
	if err != nil {
		return config.Settings{}, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// openLogger opens the log file. A log file that cannot be opened falls
// back to a discard logger after a warning on warn.
func openLogger(s config.Settings, warn io.Writer) (*slog.Logger, func()) {
	log, c, err := logging.Open(s.LogFile, s.LogLevel)
	if err != nil {
		fmt.Fprintf(warn, "warning: logging disabled: %v\n", err)
		return logging.Discard(), func() {}
	}
	return log, func() { c.Close() }
}

// backend is the opened profile storage. Store is nil for the json backend.
type backend struct {
	Profiles profile.Repo
	Store    *store.Store
}

func (b backend) Close() error {
	if b.Store != nil {
		return b.Store.Close()
	}
	return nil
}

// openBackend opens the configured profile storage.
func openBackend(s config.Settings) (backend, error) {
	switch s.Backend {
	case config.BackendJSON:
		return backend{Profiles: profile.NewFileRepo(s.UsersDir)}, nil
	default:
		if err := store.EnsureDir(s.DBPath); err != nil {
			return backend{}, fmt.Errorf("create db dir: %w", err)
		}
		st, err := store.Open(s.DBPath)
		if err != nil {
			return backend{}, fmt.Errorf("open store: %w", err)
		}
		return backend{Profiles: st.ProfileRepo(), Store: st}, nil
	}
}
