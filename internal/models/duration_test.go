package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewDurationRejectsInvertedRange(t *testing.T) {
	_, err := NewDuration(
		time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
	)
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestNewDurationNormalizesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	d, err := NewDuration(
		time.Date(2026, time.February, 1, 23, 45, 0, 0, loc),
		time.Date(2026, time.February, 3, 1, 0, 0, 0, loc),
	)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), d.Start)
	require.Equal(t, time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC), d.End)
}

func TestMonthOf(t *testing.T) {
	tests := []struct {
		month time.Month
		year  int
		days  int
	}{
		{time.February, 2026, 28},
		{time.February, 2024, 29},
		{time.April, 2026, 30},
		{time.December, 2026, 31},
	}
	for _, tt := range tests {
		d := MonthOf(tt.month, tt.year)
		require.Equal(t, time.Date(tt.year, tt.month, 1, 0, 0, 0, 0, time.UTC), d.Start)
		require.Equal(t, tt.days, d.Days(), "%s %d", tt.month, tt.year)
	}
}

func TestYearOf(t *testing.T) {
	d := YearOf(2026)
	require.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), d.Start)
	require.Equal(t, time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), d.End)
	require.Equal(t, 365, d.Days())
	require.Equal(t, 366, YearOf(2024).Days())
}

func TestDatesIsExhaustiveAndOrdered(t *testing.T) {
	d := MonthOf(time.February, 2026)
	dates := d.Dates()
	require.Len(t, dates, d.Days())
	require.Equal(t, d.Start, dates[0])
	for i := 1; i < len(dates); i++ {
		require.Equal(t, dates[i-1].AddDate(0, 0, 1), dates[i])
	}
}

func TestContains(t *testing.T) {
	d := MonthOf(time.February, 2026)
	require.True(t, d.Contains(time.Date(2026, time.February, 1, 15, 0, 0, 0, time.UTC)))
	require.True(t, d.Contains(time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)))
	require.False(t, d.Contains(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)))
	require.False(t, d.Contains(time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)))
}

func TestYears(t *testing.T) {
	d, err := NewDuration(
		time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Equal(t, []int{2025, 2026}, d.Years())
	require.Equal(t, []int{2026}, MonthOf(time.February, 2026).Years())
}
