package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/droplet-hq/jibble-export/internal/models"
)

const trackedTimeReportJSON = `{
  "value": [
    {
      "id": "aaa9e07e-a006-404a-a911-07729ddb1d28",
      "subject": {"id": "aaa9e07e-a006-404a-a911-07729ddb1d28", "name": "Ada Lovelace", "entityType": "Member"},
      "trackedTime": "PT16H",
      "items": [
        {
          "id": "02 February 2026",
          "subject": {"id": "2026-02-02", "name": "02 February 2026", "entityType": "Date"},
          "trackedTime": "PT8H"
        },
        {
          "id": "03 February 2026",
          "subject": {"id": "2026-02-03", "name": "03 February 2026", "entityType": "Date"},
          "trackedTime": "PT8H30M"
        }
      ]
    }
  ]
}`

func TestTrackedTimeEntriesFlattensReport(t *testing.T) {
	api := &stubGetter{handle: func(_ apiCall, out any) error {
		return respondJSON(trackedTimeReportJSON, out)
	}}
	svc := NewTrackedTimeService(api, nil)

	entries, err := svc.Entries(context.Background(), models.MonthOf(time.February, 2026))
	require.NoError(t, err)

	require.Len(t, api.calls, 1)
	call := api.calls[0]
	require.Equal(t, "time-attendance", call.Subdomain)
	require.Equal(t, "/v1/TrackedTimeReport", call.Path)
	require.Equal(t, "2026-02-01", call.Params.Get("from"))
	require.Equal(t, "2026-02-28", call.Params.Get("to"))
	require.Equal(t, "Member", call.Params.Get("groupBy"))
	require.Equal(t, "Date", call.Params.Get("subGroupBy"))
	require.Equal(t, "Subject,Items($expand=Subject)", call.Params.Get("$expand"))

	person := uuid.MustParse("aaa9e07e-a006-404a-a911-07729ddb1d28")
	require.Equal(t, []models.TrackedTimeEntry{
		{PersonID: person, PersonName: "Ada Lovelace", Day: utcDay(2026, time.February, 2), Tracked: 8 * time.Hour},
		{PersonID: person, PersonName: "Ada Lovelace", Day: utcDay(2026, time.February, 3), Tracked: 8*time.Hour + 30*time.Minute},
	}, entries)
}

func TestTrackedTimeEntriesRejectsDateRowsAtTopLevel(t *testing.T) {
	api := &stubGetter{handle: func(_ apiCall, out any) error {
		return respondJSON(`{"value": [{"id": "02 February 2026"}]}`, out)
	}}
	svc := NewTrackedTimeService(api, nil)

	_, err := svc.Entries(context.Background(), models.MonthOf(time.February, 2026))
	require.ErrorIs(t, err, models.ErrUnknownReportShape)
}

func TestTrackedTimeEntriesRejectsMemberRowsUnderMember(t *testing.T) {
	nested := `{
	  "value": [
	    {
	      "id": "aaa9e07e-a006-404a-a911-07729ddb1d28",
	      "subject": {"name": "Ada Lovelace", "entityType": "Member"},
	      "items": [{"id": "bbb16f2a-61a8-4f80-9e6a-2c2f38a2e901"}]
	    }
	  ]
	}`
	api := &stubGetter{handle: func(_ apiCall, out any) error {
		return respondJSON(nested, out)
	}}
	svc := NewTrackedTimeService(api, nil)

	_, err := svc.Entries(context.Background(), models.MonthOf(time.February, 2026))
	require.ErrorIs(t, err, models.ErrUnknownReportShape)
}

func TestTrackedTimeEntriesPropagatesFetchError(t *testing.T) {
	api := &stubGetter{handle: func(call apiCall, _ any) error {
		return context.DeadlineExceeded
	}}
	svc := NewTrackedTimeService(api, nil)

	_, err := svc.Entries(context.Background(), models.MonthOf(time.February, 2026))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
