package cmd

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/mathrooms/internal/app"
	"github.com/abhisek/mathrooms/internal/grid"
	"github.com/abhisek/mathrooms/internal/ladder"
	"github.com/abhisek/mathrooms/internal/plugins"
	"github.com/abhisek/mathrooms/internal/screen"
	trainerscreen "github.com/abhisek/mathrooms/internal/screens/trainer"
	"github.com/abhisek/mathrooms/internal/store"
	"github.com/abhisek/mathrooms/internal/trainer"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("mathrooms needs an interactive terminal")
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, closeLog := openLogger(settings, cmd.ErrOrStderr())
	defer closeLog()

	reg, err := plugins.Builtin()
	if err != nil {
		return err
	}

	be, err := openBackend(settings)
	if err != nil {
		return err
	}
	defer be.Close()

	opts := []ladder.Option{
		ladder.WithGridConfig(settings.Grid),
		ladder.WithLogger(log),
	}
	if settings.HasSeed {
		var n atomic.Int64
		seed := settings.Seed
		opts = append(opts, ladder.WithSeeder(func() *rand.Rand {
			return rand.New(rand.NewSource(seed + n.Add(1) - 1))
		}))
	}
	if be.Store != nil {
		events := be.Store.EventRepo()
		opts = append(opts, ladder.WithEventLog(func(ctx context.Context, player string, up grid.LevelUp) error {
			return events.AppendMasteryEvent(ctx, store.MasteryEventData{
				Player:       player,
				TrainingID:   up.TrainingID,
				Difficulty:   up.Room.Difficulty,
				TimePressure: up.Room.TimePressure,
				FromLevel:    up.From,
				ToLevel:      up.To,
				SessionID:    up.SessionID,
			})
		}))
	}

	log.Info("starting", "backend", settings.Backend, "trainings", reg.Len())
	start := func(name string) (screen.Screen, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		sel := ladder.New(ctx, reg, be.Profiles, name, opts...)
		return trainerscreen.New(sel, trainer.Start(sel, log), settings.RefreshInterval), nil
	}

	return app.Run(app.Options{
		Profiles: be.Profiles,
		Player:   settings.Player,
		Start:    start,
	})
}
