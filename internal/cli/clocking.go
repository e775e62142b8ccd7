package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClockInCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clockin",
		Short: "Clock in now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Clocking.In(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Successfully jibbled in!")
			return nil
		},
	}
}

func newClockOutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clockout",
		Short: "Clock out now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Clocking.Out(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Successfully jibbled out!")
			return nil
		},
	}
}
