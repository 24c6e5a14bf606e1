package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathrooms/internal/plugins"
)

var trainingsCmd = &cobra.Command{
	Use:   "trainings",
	Short: "List available trainings",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		reg, err := plugins.Builtin()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tLEVELS\tTIME TIERS\tDESCRIPTION")
		for _, f := range reg.All() {
			info := f.Info()
			levels := info.Mode.LevelCount(settings.Grid.UnboundedLevels)
			fmt.Fprintf(w, "%s\t%s %s\t%d\t%d\t%s\n",
				info.ID, info.Icon.Text(), info.Name, levels, len(settings.Grid.TimeLimits), info.Description)
		}
		return w.Flush()
	},
}
