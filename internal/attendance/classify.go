package attendance

import (
	"time"

	"github.com/google/uuid"

	"github.com/droplet-hq/jibble-export/internal/models"
)

// Label vocabulary. Holiday and leave cells carry the holiday or policy
// name verbatim (half days prefixed "0.5 "), so formatters can keep doing
// categorical matching on these strings.
const (
	LabelWeekendOff = "W/Off"
	LabelPresent    = "Present"
)

// CellLabel resolves the single label of one (day, person) cell. The
// precedence is strict and independent of table write order:
// weekend > holiday > present > time off > blank.
//
// A weekend always shows "W/Off" even when a leave request spans it, and a
// person who clocked in never shows as on leave that day.
func (m *Matrix) CellLabel(day time.Time, person uuid.UUID) string {
	day = models.DateOf(day)

	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return LabelWeekendOff
	}
	if name := m.Holiday[day]; name != "" {
		return name
	}
	if _, ok := m.Tracked[day][person]; ok {
		return LabelPresent
	}
	if label := m.TimeOff[day][person]; label != "" {
		return label
	}
	return ""
}

// Labels resolves the full table: one row per person in arena order, one
// column per day in chronological order. Blank cells stay empty strings.
func (m *Matrix) Labels() [][]string {
	rows := make([][]string, len(m.People))
	for i, person := range m.People {
		row := make([]string, len(m.Days))
		for j, day := range m.Days {
			row[j] = m.CellLabel(day, person)
		}
		rows[i] = row
	}
	return rows
}
