package calls

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coaching-calendar/internal/clients"
	"coaching-calendar/internal/schedule"

	"github.com/google/uuid"
)

// Repository is the persistence contract for calls.
//
// Create MUST re-validate the booking against current data atomically and
// return *ConflictError if the slot range is no longer free. The service's
// own availability check runs against a snapshot and is advisory only; the
// repository is the authority (check-then-act race).
type Repository interface {
	List(ctx context.Context) ([]Call, error)
	Create(ctx context.Context, c Call) error
	// Delete is idempotent; removing an unknown id is a no-op.
	Delete(ctx context.Context, id string) error
}

// DayLocker optionally serializes booking attempts that could collide.
// It narrows the race window before the repository's authoritative check;
// it is not a correctness mechanism.
type DayLocker interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

var ErrBookingBusy = errors.New("calls: another booking for this day is in flight")

// BookingRequest is the (client, time, type, date) tuple from the caller.
type BookingRequest struct {
	ClientID string            `json:"client_id"`
	Type     schedule.CallType `json:"type"`
	Date     string            `json:"date"`
	Time     string            `json:"time"`
}

type Service struct {
	repo   Repository
	dir    clients.Directory
	locker DayLocker
	clock  func() time.Time
}

func NewService(repo Repository, dir clients.Directory) *Service {
	return &Service{repo: repo, dir: dir, clock: time.Now}
}

// WithLocker attaches an advisory booking lock (e.g. Redis-backed).
func (s *Service) WithLocker(l DayLocker) *Service {
	s.locker = l
	return s
}

// ForDate returns the effective calls for a date: one-time calls booked on it
// plus recurring calls whose weekday matches.
func (s *Service) ForDate(ctx context.Context, date string) ([]Call, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ForDate(all, date)
}

// Check runs the advisory availability check for a proposal without booking.
func (s *Service) Check(ctx context.Context, req BookingRequest) (Availability, error) {
	day, err := s.ForDate(ctx, req.Date)
	if err != nil {
		return Availability{}, err
	}
	return CheckAvailability(req.Time, req.Type, day)
}

// Book places a new call. On success the stored call is returned; on failure
// nothing is persisted. Conflicts surface as *ConflictError whether they are
// caught by the pre-check here or by the repository at commit time.
func (s *Service) Book(ctx context.Context, req BookingRequest) (Call, error) {
	weekday, err := Weekday(req.Date)
	if err != nil {
		return Call{}, err
	}
	if _, err := schedule.SlotsNeeded(req.Type); err != nil {
		return Call{}, err
	}

	client, err := s.dir.Get(ctx, req.ClientID)
	if err != nil {
		return Call{}, fmt.Errorf("resolve client %q: %w", req.ClientID, err)
	}

	if s.locker != nil {
		// Bookings that can collide share a weekday, so lock per weekday.
		key := fmt.Sprintf("booking:weekday:%d", weekday)
		ok, err := s.locker.Acquire(ctx, key)
		if err != nil {
			return Call{}, err
		}
		if !ok {
			return Call{}, ErrBookingBusy
		}
		defer func() { _ = s.locker.Release(ctx, key) }()
	}

	avail, err := s.Check(ctx, req)
	if err != nil {
		return Call{}, err
	}
	if !avail.Available {
		return Call{}, &ConflictError{Conflicts: avail.Conflicts}
	}

	c := Call{
		ID:          uuid.NewString(),
		ClientID:    client.ID,
		ClientName:  client.Name,
		ClientPhone: client.Phone,
		Date:        req.Date,
		Time:        req.Time,
		Type:        req.Type,
		// Follow-ups recur weekly; onboarding calls are one-time.
		Recurring: req.Type == schedule.CallTypeFollowup,
		CreatedAt: s.clock().UTC(),
	}
	if c.Recurring {
		c.DayOfWeek = weekday
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Call{}, err
	}
	return c, nil
}

// Delete removes a call by id. Unknown ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
