package calls

import (
	"context"
	"errors"
	"testing"
	"time"

	"coaching-calendar/internal/clients"
	"coaching-calendar/internal/schedule"
)

func newTestService(repo Repository) *Service {
	dir := clients.NewMemoryDirectory(
		clients.Client{ID: "1", Name: "Rahul Sharma", Phone: "+91 98765 43210"},
		clients.Client{ID: "2", Name: "Priya Patel", Phone: "+91 87654 32109"},
	)
	svc := NewService(repo, dir)
	svc.clock = func() time.Time { return time.Unix(1700000000, 0) }
	return svc
}

func TestBook_FollowupIsWeeklyRecurring(t *testing.T) {
	svc := newTestService(NewMemoryRepo())

	c, err := svc.Book(context.Background(), BookingRequest{
		ClientID: "1", Type: schedule.CallTypeFollowup, Date: thursday, Time: "10:30",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.ID == "" {
		t.Fatalf("expected generated id")
	}
	if c.ClientName != "Rahul Sharma" || c.ClientPhone != "+91 98765 43210" {
		t.Fatalf("expected denormalized client fields, got %+v", c)
	}
	if !c.Recurring || c.DayOfWeek != 4 {
		t.Fatalf("expected weekly Thursday recurrence, got %+v", c)
	}
	if c.CreatedAt.IsZero() {
		t.Fatalf("expected created_at set")
	}

	// Occupies only its own slot.
	day, err := svc.ForDate(context.Background(), thursday)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if occ := OccupantOf(day, "10:30"); occ == nil || occ.ID != c.ID {
		t.Fatalf("expected booked call at 10:30")
	}
	if occ := OccupantOf(day, "10:50"); occ != nil {
		t.Fatalf("followup must occupy a single slot")
	}

	// And appears a week later, but not the day after.
	week, _ := svc.ForDate(context.Background(), nextThursday)
	if len(week) != 1 {
		t.Fatalf("expected recurring call next Thursday, got %+v", week)
	}
	fri, _ := svc.ForDate(context.Background(), friday)
	if len(fri) != 0 {
		t.Fatalf("expected no calls on Friday, got %+v", fri)
	}
}

func TestBook_OnboardingIsOneTimeAndTwoSlots(t *testing.T) {
	svc := newTestService(NewMemoryRepo())

	c, err := svc.Book(context.Background(), BookingRequest{
		ClientID: "2", Type: schedule.CallTypeOnboarding, Date: thursday, Time: "11:10",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.Recurring {
		t.Fatalf("onboarding must not recur")
	}

	// The tail slot is blocked for a followup on the same date.
	_, err = svc.Book(context.Background(), BookingRequest{
		ClientID: "1", Type: schedule.CallTypeFollowup, Date: thursday, Time: "11:30",
	})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(conflict.Conflicts) != 1 || conflict.Conflicts[0].ID != c.ID {
		t.Fatalf("expected the onboarding call reported, got %+v", conflict.Conflicts)
	}
}

func TestBook_FailedAttemptLeavesNoState(t *testing.T) {
	repo := NewMemoryRepo()
	svc := newTestService(repo)

	if _, err := svc.Book(context.Background(), BookingRequest{
		ClientID: "1", Type: schedule.CallTypeOnboarding, Date: thursday, Time: "19:30",
	}); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot for grid overrun, got %v", err)
	}

	all, _ := repo.List(context.Background())
	if len(all) != 0 {
		t.Fatalf("rejected booking must not persist anything, got %+v", all)
	}
}

func TestBook_RejectsBadInput(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Book(ctx, BookingRequest{ClientID: "1", Type: schedule.CallTypeFollowup, Date: "not-a-date", Time: "10:30"}); err == nil {
		t.Fatalf("expected error for malformed date")
	}
	if _, err := svc.Book(ctx, BookingRequest{ClientID: "1", Type: "triage", Date: thursday, Time: "10:30"}); !errors.Is(err, schedule.ErrUnknownCallType) {
		t.Fatalf("expected ErrUnknownCallType, got %v", err)
	}
	if _, err := svc.Book(ctx, BookingRequest{ClientID: "1", Type: schedule.CallTypeFollowup, Date: thursday, Time: "09:00"}); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot, got %v", err)
	}
	if _, err := svc.Book(ctx, BookingRequest{ClientID: "404", Type: schedule.CallTypeFollowup, Date: thursday, Time: "10:30"}); !errors.Is(err, clients.ErrNotFound) {
		t.Fatalf("expected clients.ErrNotFound, got %v", err)
	}
}

// staleRepo hides existing calls from List so the service pre-check passes,
// forcing the authoritative check at Create to catch the conflict.
type staleRepo struct {
	*MemoryRepo
}

func (r staleRepo) List(ctx context.Context) ([]Call, error) { return nil, nil }

func TestBook_RepositoryCatchesStaleWrite(t *testing.T) {
	inner := NewMemoryRepo()
	if err := inner.Create(context.Background(), oneTime("existing", thursday, "10:30", schedule.CallTypeFollowup)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	svc := newTestService(staleRepo{inner})
	_, err := svc.Book(context.Background(), BookingRequest{
		ClientID: "1", Type: schedule.CallTypeFollowup, Date: thursday, Time: "10:30",
	})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected write-time ConflictError, got %v", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	repo := NewMemoryRepo()
	svc := newTestService(repo)

	c, err := svc.Book(context.Background(), BookingRequest{
		ClientID: "1", Type: schedule.CallTypeFollowup, Date: thursday, Time: "10:30",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if err := svc.Delete(context.Background(), c.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := svc.Delete(context.Background(), c.ID); err != nil {
		t.Fatalf("second delete must be a no-op, got %v", err)
	}
	if err := svc.Delete(context.Background(), "never-existed"); err != nil {
		t.Fatalf("deleting unknown id must be a no-op, got %v", err)
	}

	all, _ := repo.List(context.Background())
	if len(all) != 0 {
		t.Fatalf("expected empty store, got %+v", all)
	}
}

type fakeLocker struct {
	granted  bool
	acquired []string
	released []string
}

func (l *fakeLocker) Acquire(ctx context.Context, key string) (bool, error) {
	l.acquired = append(l.acquired, key)
	return l.granted, nil
}

func (l *fakeLocker) Release(ctx context.Context, key string) error {
	l.released = append(l.released, key)
	return nil
}

func TestBook_LockerAcquiredAndReleased(t *testing.T) {
	locker := &fakeLocker{granted: true}
	svc := newTestService(NewMemoryRepo()).WithLocker(locker)

	if _, err := svc.Book(context.Background(), BookingRequest{
		ClientID: "1", Type: schedule.CallTypeFollowup, Date: thursday, Time: "10:30",
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(locker.acquired) != 1 || len(locker.released) != 1 {
		t.Fatalf("expected one acquire and one release, got %+v", locker)
	}
}

func TestBook_LockerDenied(t *testing.T) {
	svc := newTestService(NewMemoryRepo()).WithLocker(&fakeLocker{granted: false})

	_, err := svc.Book(context.Background(), BookingRequest{
		ClientID: "1", Type: schedule.CallTypeFollowup, Date: thursday, Time: "10:30",
	})
	if !errors.Is(err, ErrBookingBusy) {
		t.Fatalf("expected ErrBookingBusy, got %v", err)
	}
}
