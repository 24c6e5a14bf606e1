package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List stored players by total score",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		be, err := openBackend(settings)
		if err != nil {
			return err
		}
		defer be.Close()

		list, err := be.Profiles.List(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No players yet.")
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tPLAYER\tTRAININGS\tSCORE")
		for i, p := range list {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", i+1, p.Name, len(p.Items), p.TotalScore())
		}
		return w.Flush()
	},
}
