package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type clockingClient interface {
	apiPoster
	PersonID(ctx context.Context) (string, error)
}

// ClockingService posts clock-in/clock-out time entries for the authorized
// person.
type ClockingService struct {
	client clockingClient
	logger *zap.Logger
	now    func() time.Time
}

// NewClockingService constructs a ClockingService.
func NewClockingService(client clockingClient, logger *zap.Logger) *ClockingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClockingService{client: client, logger: logger, now: time.Now}
}

// In clocks the authorized person in at the current instant.
func (s *ClockingService) In(ctx context.Context) error {
	payload, err := s.payload(ctx, "In")
	if err != nil {
		return err
	}
	payload["time"] = s.now().UTC().Format("2006-01-02T15:04:05.000Z")

	if err := s.client.Post(ctx, "time-tracking", "/v1/TimeEntries", payload, http.StatusCreated); err != nil {
		return fmt.Errorf("clock in: %w", err)
	}
	s.logger.Info("clocked in")
	return nil
}

// Out clocks the authorized person out.
func (s *ClockingService) Out(ctx context.Context) error {
	payload, err := s.payload(ctx, "Out")
	if err != nil {
		return err
	}

	if err := s.client.Post(ctx, "time-tracking", "/v1/TimeEntries", payload, http.StatusCreated); err != nil {
		return fmt.Errorf("clock out: %w", err)
	}
	s.logger.Info("clocked out")
	return nil
}

func (s *ClockingService) payload(ctx context.Context, direction string) (map[string]any, error) {
	personID, err := s.client.PersonID(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"type":       direction,
		"personId":   personID,
		"clientType": "Web",
		"offset":     utcOffset(s.now()),
		"platform": map[string]any{
			"deviceName":    "Firefox",
			"deviceModel":   nil,
			"clientVersion": "147.0",
			"os":            "Linux",
		},
		"id": uuid.NewString(),
	}, nil
}

// utcOffset renders the local UTC offset in the API's PT<h>H<m>M form.
func utcOffset(t time.Time) string {
	_, seconds := t.Zone()
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	minutes := seconds / 60
	return fmt.Sprintf("%sPT%dH%dM", sign, minutes/60, minutes%60)
}
