package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeOffStatus is the lifecycle state of a leave request.
type TimeOffStatus string

const (
	TimeOffPending   TimeOffStatus = "Pending"
	TimeOffApproved  TimeOffStatus = "Approved"
	TimeOffRejected  TimeOffStatus = "Rejected"
	TimeOffCancelled TimeOffStatus = "Cancelled"
)

// Valid returns true when the status is a supported value.
func (s TimeOffStatus) Valid() bool {
	switch s {
	case TimeOffPending, TimeOffApproved, TimeOffRejected, TimeOffCancelled:
		return true
	default:
		return false
	}
}

// TimeOffPerson is the expanded person reference on a leave record.
type TimeOffPerson struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
}

// TimeOffPolicy is the expanded leave policy reference.
type TimeOffPolicy struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Compensation string `json:"compensation"`
}

// TimeOff is one leave request as returned by /v1/TimeOffOverview.
type TimeOff struct {
	ID        string          `json:"id"`
	PersonID  uuid.UUID       `json:"personId"`
	Person    TimeOffPerson   `json:"person"`
	Policy    TimeOffPolicy   `json:"policy"`
	StartDate APIDate         `json:"startDate"`
	EndDate   *APIDate        `json:"endDate"`
	Status    TimeOffStatus   `json:"status"`
	Duration  decimal.Decimal `json:"duration"`
	IsHalfDay bool            `json:"isHalfDay"`
}

// TimeOffsResponse is the OData envelope of /v1/TimeOffOverview.
type TimeOffsResponse struct {
	Context string    `json:"@odata.context"`
	Count   int64     `json:"@odata.count"`
	Value   []TimeOff `json:"value"`
}

// TimeOffEntry is the flattened form the matrix builder consumes.
type TimeOffEntry struct {
	PersonID uuid.UUID
	StartDay time.Time
	EndDay   *time.Time
	Status   TimeOffStatus
	Days     decimal.Decimal
	HalfDay  bool
	Policy   string
}

// Entry flattens the API record.
func (t TimeOff) Entry() TimeOffEntry {
	e := TimeOffEntry{
		PersonID: t.PersonID,
		StartDay: DateOf(t.StartDate.Time),
		Status:   t.Status,
		Days:     t.Duration,
		HalfDay:  t.IsHalfDay,
		Policy:   t.Policy.Name,
	}
	if t.EndDate != nil && !t.EndDate.IsZero() {
		end := DateOf(t.EndDate.Time)
		e.EndDay = &end
	}
	return e
}
