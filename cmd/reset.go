package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathrooms/internal/profile"
)

var resetCmd = &cobra.Command{
	Use:   "reset <name>",
	Short: "Delete a player's progress",
	Args:  cobra.ExactArgs(1),
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

		name := args[0]
		if err := be.Profiles.Delete(cmd.Context(), name); err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				return fmt.Errorf("no stored progress for %q", name)
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Progress of %q deleted.\n", name)
		return nil
	},
}
