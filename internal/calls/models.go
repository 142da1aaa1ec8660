package calls

import (
	"errors"
	"fmt"
	"time"

	"coaching-calendar/internal/schedule"
)

// Call is a booked coaching call.
//
// Calls are immutable once created; the only mutation is delete (and
// re-create). Client name and phone are denormalized from the directory at
// booking time and never re-resolved.
//
// Recurrence invariant: Recurring is true only for follow-up calls, and then
// DayOfWeek must equal the weekday of Date. A recurring call repeats on that
// weekday without end; its absolute Date only records where the series began.

type Call struct {
	ID       string `json:"id" db:"id"`
	ClientID string `json:"client_id" db:"client_id"`

	ClientName  string `json:"client_name" db:"client_name"`
	ClientPhone string `json:"client_phone" db:"client_phone"`

	// Date is the calendar date the call was booked for, "2006-01-02".
	Date string `json:"date" db:"date"`
	// Time is the slot start, "HH:MM", and must be a grid member.
	Time string `json:"time" db:"time"`

	Type schedule.CallType `json:"type" db:"type"`

	Recurring bool `json:"recurring" db:"recurring"`
	// DayOfWeek is 0 (Sunday) .. 6 (Saturday); meaningful only when Recurring.
	DayOfWeek int `json:"day_of_week" db:"day_of_week"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

const dateLayout = "2006-01-02"

// ErrInvalidDate rejects dates that are not ISO "YYYY-MM-DD".
var ErrInvalidDate = errors.New("calls: invalid date")

// Weekday returns the 0..6 weekday of an ISO date string.
func Weekday(date string) (int, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return int(d.Weekday()), nil
}

// ValidDate reports whether date is a well-formed ISO calendar date.
func ValidDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}

// AppliesTo reports whether the call is on the agenda for the given date:
// exact date match for one-time calls, weekday match for recurring ones.
func (c Call) AppliesTo(date string, weekday int) bool {
	if c.Recurring {
		return c.DayOfWeek == weekday
	}
	return c.Date == date
}
