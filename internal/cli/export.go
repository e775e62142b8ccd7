package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/droplet-hq/jibble-export/internal/models"
	"github.com/droplet-hq/jibble-export/internal/service"
)

func newExportCommand(app *App) *cobra.Command {
	var (
		durationArg string
		formatArg   string
		calendarArg string
		outputArg   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the attendance report for a duration",
		Long: `Export the attendance report for a duration.

Duration formats:
  jibble export --duration "2026-02-01:2026-02-28"
  jibble export --duration feb
  jibble export --duration feb,2026
  jibble export --duration 2026

Without --duration the report covers the current month.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, stem, err := ParseDurationArg(durationArg, time.Now())
			if err != nil {
				return err
			}
			format := models.ExportFormat(formatArg)
			if !format.Valid() {
				return fmt.Errorf("unsupported format %q (want xlsx, csv or pdf)", formatArg)
			}
			filename := outputArg
			if filename == "" {
				filename = stem + format.Ext()
			}

			result, err := app.Reports.Export(cmd.Context(), service.ExportRequest{
				Duration: duration,
				Format:   format,
				Filename: filename,
				Calendar: calendarArg,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d people)\n", result.Path, result.People)
			return nil
		},
	}

	cmd.Flags().StringVarP(&durationArg, "duration", "d", "", "duration to export (see --help for formats)")
	cmd.Flags().StringVarP(&formatArg, "format", "f", string(models.FormatXLSX), "output format: xlsx, csv or pdf")
	cmd.Flags().StringVar(&calendarArg, "calendar", "", "holiday calendar name (defaults to configuration)")
	cmd.Flags().StringVarP(&outputArg, "output", "o", "", "output filename relative to the reports directory")

	return cmd
}

func newLastCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Print the path of the most recent report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, err := app.Storage.LastExport()
			if err != nil {
				return err
			}
			if rel == "" {
				return fmt.Errorf("no report has been exported yet")
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Storage.Path(rel))
			return nil
		},
	}
}
