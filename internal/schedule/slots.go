package schedule

import (
	"errors"
	"fmt"
)

// The daily booking window. Slots are fixed-width and the window never
// depends on the wall clock; changing these constants is a deploy, not
// runtime configuration.
const (
	windowStartMinutes = 10*60 + 30 // 10:30
	windowEndMinutes   = 19*60 + 30 // 19:30, inclusive
	slotMinutes        = 20
)

// CallType determines how many contiguous slots a call occupies.
type CallType string

const (
	CallTypeOnboarding CallType = "onboarding"
	CallTypeFollowup   CallType = "followup"
)

var ErrUnknownCallType = errors.New("schedule: unknown call type")

var (
	slots     []string
	slotIndex map[string]int
)

func init() {
	for m := windowStartMinutes; m <= windowEndMinutes; m += slotMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	slotIndex = make(map[string]int, len(slots))
	for i, s := range slots {
		slotIndex[s] = i
	}
}

// Slots returns the ordered grid of bookable start times ("HH:MM", 24h).
// Callers must not mutate the returned slice.
func Slots() []string {
	out := make([]string, len(slots))
	copy(out, slots)
	return out
}

// Len returns the number of slots in the daily grid.
func Len() int { return len(slots) }

// Index resolves a start time to its position in the grid.
// A stored time outside the grid is a data consistency violation; the
// second return makes that case explicit instead of a -1 sentinel.
func Index(t string) (int, bool) {
	i, ok := slotIndex[t]
	return i, ok
}

// At returns the slot at position i, or "" if i is out of range.
func At(i int) string {
	if i < 0 || i >= len(slots) {
		return ""
	}
	return slots[i]
}

// SlotsNeeded returns how many contiguous grid slots a call type occupies.
func SlotsNeeded(ct CallType) (int, error) {
	switch ct {
	case CallTypeOnboarding:
		return 2, nil
	case CallTypeFollowup:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCallType, ct)
	}
}

// DurationMinutes returns the display duration of a call type.
func DurationMinutes(ct CallType) (int, error) {
	n, err := SlotsNeeded(ct)
	if err != nil {
		return 0, err
	}
	return n * slotMinutes, nil
}

// ValidType reports whether ct is a member of the call type enumeration.
func ValidType(ct CallType) bool {
	_, err := SlotsNeeded(ct)
	return err == nil
}

// FormatClock renders a 24h "HH:MM" grid time as "h:MM AM/PM" for display.
func FormatClock(t string) string {
	var h, m int
	if _, err := fmt.Sscanf(t, "%d:%d", &h, &m); err != nil {
		return t
	}
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	dh := h % 12
	if dh == 0 {
		dh = 12
	}
	return fmt.Sprintf("%d:%02d %s", dh, m, ampm)
}
