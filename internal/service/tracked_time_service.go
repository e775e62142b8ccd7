package service

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/droplet-hq/jibble-export/internal/models"
)

// TrackedTimeService fetches the tracked-time report, grouped by member and
// sub-grouped by date.
type TrackedTimeService struct {
	client apiGetter
	logger *zap.Logger
}

// NewTrackedTimeService constructs a TrackedTimeService.
func NewTrackedTimeService(client apiGetter, logger *zap.Logger) *TrackedTimeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrackedTimeService{client: client, logger: logger}
}

// Report fetches the raw member/date report for the duration.
func (s *TrackedTimeService) Report(ctx context.Context, d models.Duration) (*models.TrackedTimeReport, error) {
	params := url.Values{}
	params.Set("from", d.Start.Format(models.DateLayout))
	params.Set("to", d.End.Format(models.DateLayout))
	params.Set("groupBy", "Member")
	params.Set("subGroupBy", "Date")
	params.Set("$expand", "Subject,Items($expand=Subject)")

	var report models.TrackedTimeReport
	if err := s.client.Get(ctx, "time-attendance", "/v1/TrackedTimeReport", params, &report); err != nil {
		return nil, fmt.Errorf("fetch tracked time report: %w", err)
	}
	return &report, nil
}

// Entries fetches the report and flattens it to per-person/per-day entries.
// The top level must be member rows and every item under a member must be a
// date row; any other shape is a contract violation and fails hard.
func (s *TrackedTimeService) Entries(ctx context.Context, d models.Duration) ([]models.TrackedTimeEntry, error) {
	report, err := s.Report(ctx, d)
	if err != nil {
		return nil, err
	}

	var entries []models.TrackedTimeEntry
	for _, row := range report.Value {
		member, ok := row.(models.MemberValue)
		if !ok {
			return nil, fmt.Errorf("%w: want member grouping at top level, got %s",
				models.ErrUnknownReportShape, row.Entity())
		}
		for _, item := range member.Items {
			date, ok := item.(models.DateValue)
			if !ok {
				return nil, fmt.Errorf("%w: want date grouping under member %s, got %s",
					models.ErrUnknownReportShape, member.ID, item.Entity())
			}
			entries = append(entries, models.TrackedTimeEntry{
				PersonID:   member.ID,
				PersonName: member.Subject.Name,
				Day:        date.Day,
				Tracked:    date.TrackedTime,
			})
		}
	}

	s.logger.Debug("flattened tracked time report",
		zap.Int("members", len(report.Value)),
		zap.Int("entries", len(entries)))
	return entries, nil
}
