package agenda

import (
	"context"

	"coaching-calendar/internal/calls"
	"coaching-calendar/internal/schedule"
)

// CallSource supplies the effective calls for a date.
type CallSource interface {
	ForDate(ctx context.Context, date string) ([]calls.Call, error)
}

// Cache is an optional read-through cache for day views. Implementations
// must treat misses and errors identically (return ok=false); the agenda is
// always recomputable.
type Cache interface {
	Get(ctx context.Context, date string) (DayView, bool)
	Set(ctx context.Context, date string, v DayView)
	// Invalidate drops every cached day. Recurring calls touch an unbounded
	// set of dates, so per-date eviction is not enough.
	Invalidate(ctx context.Context)
}

// SlotView is one grid slot with its occupant, if any.
type SlotView struct {
	Time      string      `json:"time"`
	Display   string      `json:"display"`
	Available bool        `json:"available"`
	Call      *calls.Call `json:"call,omitempty"`
}

// Summary backs the daily summary panel.
type Summary struct {
	TotalCalls  int `json:"total_calls"`
	Onboardings int `json:"onboardings"`
	Followups   int `json:"followups"`
	OpenSlots   int `json:"open_slots"`
}

type DayView struct {
	Date    string     `json:"date"`
	Slots   []SlotView `json:"slots"`
	Summary Summary    `json:"summary"`
}

type Service struct {
	source CallSource
	cache  Cache
}

func NewService(source CallSource) *Service {
	return &Service{source: source}
}

func (s *Service) WithCache(c Cache) *Service {
	s.cache = c
	return s
}

// Day assembles the per-slot view for a date, cached when a cache is wired.
func (s *Service) Day(ctx context.Context, date string) (DayView, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(ctx, date); ok {
			return v, nil
		}
	}

	day, err := s.source.ForDate(ctx, date)
	if err != nil {
		return DayView{}, err
	}

	view := DayView{Date: date, Summary: Summary{TotalCalls: len(day)}}
	for _, c := range day {
		switch c.Type {
		case schedule.CallTypeOnboarding:
			view.Summary.Onboardings++
		case schedule.CallTypeFollowup:
			view.Summary.Followups++
		}
	}

	for _, slot := range schedule.Slots() {
		sv := SlotView{Time: slot, Display: schedule.FormatClock(slot), Available: true}
		if occ := calls.OccupantOf(day, slot); occ != nil {
			sv.Available = false
			sv.Call = occ
		} else {
			view.Summary.OpenSlots++
		}
		view.Slots = append(view.Slots, sv)
	}

	if s.cache != nil {
		s.cache.Set(ctx, date, view)
	}
	return view, nil
}

// Invalidate drops cached views after a booking or delete.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
