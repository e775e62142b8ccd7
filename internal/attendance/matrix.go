// Package attendance assembles the per-person/per-day attendance matrix
// from the three fetched collections: tracked time, holiday calendar days
// and approved time off. Building the tables and resolving cell labels are
// two separate stages; see classify.go for the label precedence.
package attendance

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/droplet-hq/jibble-export/internal/models"
)

// NoPersonFoundError means the tracked-time report yielded no people for
// the requested duration. A report without people is meaningless, and
// retrying the same inputs cannot succeed.
type NoPersonFoundError struct {
	Duration models.Duration
}

func (e *NoPersonFoundError) Error() string {
	return fmt.Sprintf("no tracked person found between %s and %s",
		e.Duration.Start.Format(models.DateLayout), e.Duration.End.Format(models.DateLayout))
}

// Matrix is the built attendance table set: three tables co-indexed over
// Days × People plus the person display-name map. Days is the exhaustive
// inclusive day axis of the requested duration; People is sorted by display
// name (ties by id) so downstream rendering is deterministic.
type Matrix struct {
	Days   []time.Time
	People []uuid.UUID
	Names  map[uuid.UUID]string

	// Tracked holds the worked duration per day and person.
	Tracked map[time.Time]map[uuid.UUID]time.Duration
	// Holiday holds the organization-wide holiday name per day.
	Holiday map[time.Time]string
	// TimeOff holds the leave label per day and person.
	TimeOff map[time.Time]map[uuid.UUID]string
}

var halfDay = decimal.NewFromFloat(0.5)

// BuildMatrix populates the three tables in one pass. Entries whose day
// falls outside the duration are clipped, never an error. Duplicate writes
// to the same cell follow last-write-wins, including duplicate holiday
// names on one day. Only Approved time-off entries are considered, whatever
// the upstream fetch promised. When one person id appears with two display
// names the first one seen wins.
func BuildMatrix(d models.Duration, tracked []models.TrackedTimeEntry, holidays []models.HolidayEntry, timeOffs []models.TimeOffEntry) (*Matrix, error) {
	m := &Matrix{
		Days:    d.Dates(),
		Names:   make(map[uuid.UUID]string),
		Tracked: make(map[time.Time]map[uuid.UUID]time.Duration),
		Holiday: make(map[time.Time]string),
		TimeOff: make(map[time.Time]map[uuid.UUID]string),
	}
	for _, day := range m.Days {
		m.Tracked[day] = make(map[uuid.UUID]time.Duration)
		m.TimeOff[day] = make(map[uuid.UUID]string)
	}

	for _, entry := range tracked {
		if _, seen := m.Names[entry.PersonID]; !seen {
			m.Names[entry.PersonID] = entry.PersonName
			m.People = append(m.People, entry.PersonID)
		}
	}
	if len(m.People) == 0 {
		return nil, &NoPersonFoundError{Duration: d}
	}
	sort.Slice(m.People, func(i, j int) bool {
		a, b := m.People[i], m.People[j]
		if m.Names[a] != m.Names[b] {
			return m.Names[a] < m.Names[b]
		}
		return a.String() < b.String()
	})

	for _, entry := range tracked {
		day := models.DateOf(entry.Day)
		if !d.Contains(day) {
			continue
		}
		m.Tracked[day][entry.PersonID] = entry.Tracked
	}

	for _, holiday := range holidays {
		day := models.DateOf(holiday.Day)
		if !d.Contains(day) {
			continue
		}
		m.Holiday[day] = holiday.Name
	}

	for _, off := range timeOffs {
		if off.Status != models.TimeOffApproved {
			continue
		}
		label := off.Policy
		if off.Days.Equal(halfDay) {
			label = "0.5 " + off.Policy
		}
		for _, day := range expandTimeOff(off) {
			if !d.Contains(day) {
				continue
			}
			m.TimeOff[day][off.PersonID] = label
		}
	}

	return m, nil
}

// expandTimeOff materializes the inclusive day range of one leave request.
// A missing end day means the range length comes from the day amount
// (a half day spans its start day only).
func expandTimeOff(off models.TimeOffEntry) []time.Time {
	start := models.DateOf(off.StartDay)
	end := start
	if off.EndDay != nil {
		end = models.DateOf(*off.EndDay)
	} else if periods := int(off.Days.Ceil().IntPart()); periods > 1 {
		end = start.AddDate(0, 0, periods-1)
	}
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}
