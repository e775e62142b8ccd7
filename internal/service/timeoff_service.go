package service

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/droplet-hq/jibble-export/internal/models"
)

// TimeOffService fetches leave requests from the time-off overview.
type TimeOffService struct {
	client apiGetter
	logger *zap.Logger
}

// NewTimeOffService constructs a TimeOffService.
func NewTimeOffService(client apiGetter, logger *zap.Logger) *TimeOffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimeOffService{client: client, logger: logger}
}

// Approved fetches approved leave requests whose start or end falls inside
// the duration, ordered by start date.
func (s *TimeOffService) Approved(ctx context.Context, d models.Duration) ([]models.TimeOffEntry, error) {
	from := d.Start.Format(models.DateLayout)
	to := d.End.Format(models.DateLayout)
	conditions := fmt.Sprintf(
		"(startDate ge %s and startDate le %s) or (endDate ge %s and endDate le %s)",
		from, to, from, to)
	conditions = fmt.Sprintf("((%s) and (status eq 'Approved'))", conditions)

	params := url.Values{}
	params.Set("$count", "true")
	params.Set("$expand", "person($select=fullName,id),policy($select=name,compensation,kind,id)")
	params.Set("$filter", conditions)
	params.Set("$orderby", "startDate")

	var resp models.TimeOffsResponse
	if err := s.client.Get(ctx, "time-tracking", "/v1/TimeOffOverview", params, &resp); err != nil {
		return nil, fmt.Errorf("fetch time offs: %w", err)
	}

	entries := make([]models.TimeOffEntry, 0, len(resp.Value))
	for _, off := range resp.Value {
		entries = append(entries, off.Entry())
	}

	s.logger.Debug("fetched time offs", zap.Int("entries", len(entries)))
	return entries, nil
}
