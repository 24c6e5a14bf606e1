package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathrooms/internal/config"
	"github.com/abhisek/mathrooms/internal/mastery"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent level-ups",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if settings.Backend != config.BackendSQLite {
			return errors.New("stats needs the sqlite backend")
		}
		be, err := openBackend(settings)
		if err != nil {
			return err
		}
		defer be.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		events, err := be.Store.EventRepo().RecentMasteryEvents(cmd.Context(), settings.Player, limit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No level-ups recorded yet.")
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tPLAYER\tTRAINING\tROOM\tLEVEL")
		for _, e := range events {
			room := mastery.Room{Difficulty: e.Difficulty, TimePressure: e.TimePressure}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d → %d\n",
				e.CreatedAt.Local().Format(time.DateTime), e.PlayerKey, e.TrainingID, room, e.FromLevel, e.ToLevel)
		}
		return w.Flush()
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of level-ups to show")
}
