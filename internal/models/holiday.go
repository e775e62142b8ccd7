package models

import "time"

// Calendar identifies a named organization holiday calendar.
type Calendar struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CalendarsResponse is the OData envelope of /v1/Calendars.
type CalendarsResponse struct {
	Context string     `json:"@odata.context"`
	Value   []Calendar `json:"value"`
}

// Holiday is one day of a holiday calendar.
type Holiday struct {
	ID         string  `json:"id"`
	Date       APIDate `json:"date"`
	Name       string  `json:"name"`
	CalendarID string  `json:"calendarId"`
}

// CalendarDaysResponse is the OData envelope of /v1/CalendarDays.
type CalendarDaysResponse struct {
	Context string    `json:"@odata.context"`
	Count   int64     `json:"@odata.count"`
	Value   []Holiday `json:"value"`
}

// HolidayEntry is the flattened form the matrix builder consumes.
// Holidays are organization-wide: they apply to every person.
type HolidayEntry struct {
	Day  time.Time
	Name string
}

// Entry flattens the API record.
func (h Holiday) Entry() HolidayEntry {
	return HolidayEntry{Day: DateOf(h.Date.Time), Name: h.Name}
}
