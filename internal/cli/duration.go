package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/droplet-hq/jibble-export/internal/models"
)

const filenamePrefix = "attendance_report_"

// ParseDurationArg implements the export duration grammar:
//
//	""                      current month
//	"2026-02-01:2026-02-28" exact date range
//	"feb"                   named month of the current year
//	"feb,2026"              named month and year
//	"2026"                  whole year
//
// Month names match on their first three letters, case-insensitive. The
// second return value is the report filename stem derived from the
// duration.
func ParseDurationArg(arg string, now time.Time) (models.Duration, string, error) {
	arg = strings.TrimSpace(arg)

	if arg == "" {
		d := models.MonthOf(now.Month(), now.Year())
		return d, fmt.Sprintf("%s%s-%d", filenamePrefix, now.Month(), now.Year()), nil
	}

	if strings.Contains(arg, ":") {
		parts := strings.SplitN(arg, ":", 2)
		start, err := time.Parse(models.DateLayout, parts[0])
		if err != nil {
			return models.Duration{}, "", fmt.Errorf("invalid start date %q (want yyyy-mm-dd)", parts[0])
		}
		end, err := time.Parse(models.DateLayout, parts[1])
		if err != nil {
			return models.Duration{}, "", fmt.Errorf("invalid end date %q (want yyyy-mm-dd)", parts[1])
		}
		d, err := models.NewDuration(start, end)
		if err != nil {
			return models.Duration{}, "", err
		}
		return d, filenamePrefix + strings.ReplaceAll(arg, ":", "_"), nil
	}

	if strings.Contains(arg, ",") {
		parts := strings.SplitN(arg, ",", 2)
		month, err := monthFromName(parts[0])
		if err != nil {
			return models.Duration{}, "", err
		}
		year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return models.Duration{}, "", fmt.Errorf("invalid year %q", parts[1])
		}
		d := models.MonthOf(month, year)
		return d, fmt.Sprintf("%s%s-%d", filenamePrefix, month, year), nil
	}

	if year, err := strconv.Atoi(arg); err == nil {
		return models.YearOf(year), filenamePrefix + arg, nil
	}

	month, err := monthFromName(arg)
	if err != nil {
		return models.Duration{}, "", err
	}
	d := models.MonthOf(month, now.Year())
	return d, fmt.Sprintf("%s%s-%d", filenamePrefix, month, now.Year()), nil
}

func monthFromName(name string) (time.Month, error) {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return 0, fmt.Errorf("unknown month %q", name)
	}
	prefix := strings.ToLower(name)[:3]
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String())[:3] == prefix {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", name)
}
