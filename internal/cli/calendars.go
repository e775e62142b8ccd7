package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCalendarsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "calendars",
		Short: "List the organization's holiday calendars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calendars, err := app.Holidays.Calendars(cmd.Context())
			if err != nil {
				return err
			}
			for _, calendar := range calendars {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", calendar.ID, calendar.Name)
			}
			return nil
		},
	}
}
