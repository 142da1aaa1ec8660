package calls

import (
	"errors"
	"strings"

	"coaching-calendar/internal/schedule"
)

// ErrInvalidSlot rejects a proposed time that is not a grid member, or a
// multi-slot call that would run past the end of the grid. Invalid slots are
// never coerced to a nearby valid one.
var ErrInvalidSlot = errors.New("calls: time is not a bookable slot")

// ConflictError carries the distinct existing calls that block a proposal.
type ConflictError struct {
	Conflicts []Call
}

func (e *ConflictError) Error() string {
	names := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		names[i] = c.ClientName
	}
	return "calls: slot conflict with " + strings.Join(names, ", ")
}

// Availability is the result of a conflict check for a proposed booking.
type Availability struct {
	Available bool   `json:"available"`
	Conflicts []Call `json:"conflicting_calls"`
}

// ForDate returns the calls active on the given date: one-time calls whose
// date matches exactly, plus recurring calls whose weekday matches regardless
// of their own date. Input order is preserved.
func ForDate(all []Call, date string) ([]Call, error) {
	weekday, err := Weekday(date)
	if err != nil {
		return nil, err
	}
	out := make([]Call, 0, len(all))
	for _, c := range all {
		if c.AppliesTo(date, weekday) {
			out = append(out, c)
		}
	}
	return out, nil
}

// slotRange resolves the half-open grid index range [start, start+n) a call
// occupies. A call whose stored time is not on the grid, or whose type is
// unknown, is unlocatable and occupies nothing.
func slotRange(c Call) (start, end int, ok bool) {
	start, ok = schedule.Index(c.Time)
	if !ok {
		return 0, 0, false
	}
	n, err := schedule.SlotsNeeded(c.Type)
	if err != nil {
		return 0, 0, false
	}
	return start, start + n, true
}

// OccupantOf returns the call occupying the given slot, or nil.
// With correct data at most one call occupies a slot; if a prior bad write
// left overlapping calls, the first in input order wins so the result stays
// deterministic.
func OccupantOf(dayCalls []Call, slotTime string) *Call {
	idx, ok := schedule.Index(slotTime)
	if !ok {
		return nil
	}
	for i := range dayCalls {
		start, end, ok := slotRange(dayCalls[i])
		if ok && idx >= start && idx < end {
			return &dayCalls[i]
		}
	}
	return nil
}

// CheckAvailability decides whether a call of the given type can start at
// startTime without colliding with dayCalls. dayCalls must already be the
// result of ForDate for the target date, so recurring collisions are included.
//
// The check fails closed: an off-grid start or a call that would run past the
// last slot returns ErrInvalidSlot. Each conflicting call is reported once
// even when it blocks several of the proposed slots.
func CheckAvailability(startTime string, ct schedule.CallType, dayCalls []Call) (Availability, error) {
	needed, err := schedule.SlotsNeeded(ct)
	if err != nil {
		return Availability{}, err
	}

	startIndex, ok := schedule.Index(startTime)
	if !ok || startIndex+needed > schedule.Len() {
		return Availability{}, ErrInvalidSlot
	}

	var conflicts []Call
	seen := make(map[string]struct{})
	for i := 0; i < needed; i++ {
		occ := OccupantOf(dayCalls, schedule.At(startIndex+i))
		if occ == nil {
			continue
		}
		if _, dup := seen[occ.ID]; dup {
			continue
		}
		seen[occ.ID] = struct{}{}
		conflicts = append(conflicts, *occ)
	}

	return Availability{Available: len(conflicts) == 0, Conflicts: conflicts}, nil
}
