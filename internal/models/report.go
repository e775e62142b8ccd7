package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EntityType discriminates tracked-time report rows.
type EntityType string

const (
	EntityMember EntityType = "Member"
	EntityDate   EntityType = "Date"
)

// ErrUnknownReportShape is returned when a report row matches neither the
// member-grouped nor the date-grouped variant. This is a contract violation
// of the upstream API and aborts decoding immediately.
var ErrUnknownReportShape = errors.New("unrecognized tracked-time report row")

// Subject carries the display metadata attached to a report row.
type Subject struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	EntityType EntityType `json:"entityType"`
	ChipColor  *string    `json:"chipColor"`
	IsDeleted  bool       `json:"isDeleted"`
}

// ReportValue is one row of the tracked-time report. The API returns a
// heterogeneous list: when grouped by member the row id is a person UUID,
// when sub-grouped by date it is a spelled-out date. The id shape is the
// discriminant.
type ReportValue interface {
	Entity() EntityType
}

// MemberValue is a member-grouped row; Items holds its date sub-rows.
type MemberValue struct {
	ID             uuid.UUID
	Subject        Subject
	BillableAmount int64
	Time           time.Duration
	TrackedTime    time.Duration
	Items          []ReportValue
}

func (MemberValue) Entity() EntityType { return EntityMember }

// DateValue is a date-grouped row holding the time tracked on one day.
type DateValue struct {
	Day            time.Time
	Subject        Subject
	BillableAmount int64
	Time           time.Duration
	TrackedTime    time.Duration
}

func (DateValue) Entity() EntityType { return EntityDate }

// TrackedTimeReport is the OData envelope of /v1/TrackedTimeReport.
type TrackedTimeReport struct {
	Context string
	Value   []ReportValue
}

func (r *TrackedTimeReport) UnmarshalJSON(data []byte) error {
	var raw struct {
		Context string            `json:"@odata.context"`
		Value   []json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Context = raw.Context
	r.Value = make([]ReportValue, 0, len(raw.Value))
	for _, msg := range raw.Value {
		v, err := decodeReportValue(msg)
		if err != nil {
			return err
		}
		r.Value = append(r.Value, v)
	}
	return nil
}

type rawReportValue struct {
	ID             string            `json:"id"`
	Subject        Subject           `json:"subject"`
	BillableAmount int64             `json:"billableAmount"`
	Time           APIDuration       `json:"time"`
	TrackedTime    APIDuration       `json:"trackedTime"`
	Items          []json.RawMessage `json:"items"`
}

func decodeReportValue(data []byte) (ReportValue, error) {
	var raw rawReportValue
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if id, err := uuid.Parse(raw.ID); err == nil {
		mv := MemberValue{
			ID:             id,
			Subject:        raw.Subject,
			BillableAmount: raw.BillableAmount,
			Time:           raw.Time.Duration(),
			TrackedTime:    raw.TrackedTime.Duration(),
		}
		for _, item := range raw.Items {
			v, err := decodeReportValue(item)
			if err != nil {
				return nil, err
			}
			mv.Items = append(mv.Items, v)
		}
		return mv, nil
	}

	if day, err := parseReportDate(raw.ID); err == nil {
		return DateValue{
			Day:            day,
			Subject:        raw.Subject,
			BillableAmount: raw.BillableAmount,
			Time:           raw.Time.Duration(),
			TrackedTime:    raw.TrackedTime.Duration(),
		}, nil
	}

	return nil, fmt.Errorf("%w: id %q", ErrUnknownReportShape, raw.ID)
}

// parseReportDate handles the report's "17 February 2026" date ids, plus
// plain ISO dates for good measure.
func parseReportDate(s string) (time.Time, error) {
	if t, err := time.Parse("2 January 2006", s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// TrackedTimeEntry is the flattened form the matrix builder consumes: one
// person, one day, the time tracked that day.
type TrackedTimeEntry struct {
	PersonID   uuid.UUID
	PersonName string
	Day        time.Time
	Tracked    time.Duration
}
