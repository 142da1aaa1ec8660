package schedule

import (
	"fmt"
	"testing"
)

func TestSlots_GridShape(t *testing.T) {
	got := Slots()
	if len(got) == 0 {
		t.Fatalf("expected non-empty grid")
	}
	if got[0] != "10:30" {
		t.Fatalf("expected first slot 10:30, got %s", got[0])
	}
	if got[len(got)-1] != "19:30" {
		t.Fatalf("expected last slot 19:30, got %s", got[len(got)-1])
	}
	if len(got) != 28 {
		t.Fatalf("expected 28 slots, got %d", len(got))
	}
}

func TestSlots_StrictlyIncreasingBy20(t *testing.T) {
	got := Slots()
	prev := -1
	for _, s := range got {
		var h, m int
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			t.Fatalf("bad slot format %q: %v", s, err)
		}
		cur := h*60 + m
		if prev >= 0 && cur-prev != 20 {
			t.Fatalf("expected 20 minute step at %s, got %d", s, cur-prev)
		}
		prev = cur
	}
}

func TestIndex(t *testing.T) {
	i, ok := Index("10:30")
	if !ok || i != 0 {
		t.Fatalf("expected (0,true), got (%d,%v)", i, ok)
	}
	if _, ok := Index("10:31"); ok {
		t.Fatalf("expected off-grid time to be unlocatable")
	}
	if _, ok := Index(""); ok {
		t.Fatalf("expected empty time to be unlocatable")
	}
	last, ok := Index("19:30")
	if !ok || last != Len()-1 {
		t.Fatalf("expected last index %d, got %d", Len()-1, last)
	}
}

func TestAt_RoundTripsIndex(t *testing.T) {
	for i, s := range Slots() {
		if At(i) != s {
			t.Fatalf("At(%d) = %q, want %q", i, At(i), s)
		}
	}
	if At(-1) != "" || At(Len()) != "" {
		t.Fatalf("expected out-of-range At to return empty")
	}
}

func TestSlotsNeeded(t *testing.T) {
	if n, err := SlotsNeeded(CallTypeOnboarding); err != nil || n != 2 {
		t.Fatalf("onboarding: expected 2, got %d (%v)", n, err)
	}
	if n, err := SlotsNeeded(CallTypeFollowup); err != nil || n != 1 {
		t.Fatalf("followup: expected 1, got %d (%v)", n, err)
	}
	if _, err := SlotsNeeded(CallType("triage")); err == nil {
		t.Fatalf("expected error for unknown call type")
	}
}

func TestDurationMinutes(t *testing.T) {
	if d, err := DurationMinutes(CallTypeOnboarding); err != nil || d != 40 {
		t.Fatalf("onboarding: expected 40, got %d (%v)", d, err)
	}
	if d, err := DurationMinutes(CallTypeFollowup); err != nil || d != 20 {
		t.Fatalf("followup: expected 20, got %d (%v)", d, err)
	}
	if _, err := DurationMinutes(CallType("")); err == nil {
		t.Fatalf("expected error for empty call type")
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[string]string{
		"10:30": "10:30 AM",
		"11:50": "11:50 AM",
		"12:10": "12:10 PM",
		"19:30": "7:30 PM",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Fatalf("FormatClock(%q) = %q, want %q", in, got, want)
		}
	}
}
