package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/droplet-hq/jibble-export/internal/models"
)

// HolidayService fetches holiday calendars and their days.
type HolidayService struct {
	client apiGetter
	logger *zap.Logger
}

// NewHolidayService constructs a HolidayService.
func NewHolidayService(client apiGetter, logger *zap.Logger) *HolidayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayService{client: client, logger: logger}
}

// Calendars lists the organization's holiday calendars.
func (s *HolidayService) Calendars(ctx context.Context) ([]models.Calendar, error) {
	params := url.Values{}
	params.Set("$select", "id,name")

	var resp models.CalendarsResponse
	if err := s.client.Get(ctx, "workspace", "/v1/Calendars", params, &resp); err != nil {
		return nil, fmt.Errorf("fetch calendars: %w", err)
	}
	return resp.Value, nil
}

// CalendarDays fetches one calendar's holiday days for a year.
func (s *HolidayService) CalendarDays(ctx context.Context, calendarID string, year int) ([]models.Holiday, error) {
	params := url.Values{}
	params.Set("$filter", fmt.Sprintf("(year(Date) eq %d and calendarId eq %s)", year, calendarID))
	params.Set("$count", "true")

	var resp models.CalendarDaysResponse
	if err := s.client.Get(ctx, "workspace", "/v1/CalendarDays", params, &resp); err != nil {
		return nil, fmt.Errorf("fetch calendar days: %w", err)
	}
	return resp.Value, nil
}

// HolidaysByCalendar resolves a calendar by name (case-insensitive) and
// returns its holiday entries across the given years.
func (s *HolidayService) HolidaysByCalendar(ctx context.Context, name string, years []int) ([]models.HolidayEntry, error) {
	calendars, err := s.Calendars(ctx)
	if err != nil {
		return nil, err
	}

	var calendar *models.Calendar
	available := make([]string, 0, len(calendars))
	for i := range calendars {
		available = append(available, calendars[i].Name)
		if strings.EqualFold(calendars[i].Name, name) {
			calendar = &calendars[i]
		}
	}
	if calendar == nil {
		return nil, fmt.Errorf("holiday calendar %q not found (available: %s)",
			name, strings.Join(available, ", "))
	}

	var entries []models.HolidayEntry
	for _, year := range years {
		days, err := s.CalendarDays(ctx, calendar.ID, year)
		if err != nil {
			return nil, err
		}
		for _, day := range days {
			entries = append(entries, day.Entry())
		}
	}

	s.logger.Debug("fetched holidays",
		zap.String("calendar", calendar.Name),
		zap.Ints("years", years),
		zap.Int("days", len(entries)))
	return entries, nil
}
