package calls

import (
	"context"
	"sync"
)

// MemoryRepo keeps calls in a mutex-guarded slice. It performs the same
// authoritative conflict re-check as the Postgres repository so the
// check-then-act contract holds for tests and local runs too.

type MemoryRepo struct {
	mu    sync.Mutex
	calls []Call
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) List(ctx context.Context) ([]Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out, nil
}

func (r *MemoryRepo) Create(ctx context.Context, c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	day, err := ForDate(r.calls, c.Date)
	if err != nil {
		return err
	}
	avail, err := CheckAvailability(c.Time, c.Type, day)
	if err != nil {
		return err
	}
	if !avail.Available {
		return &ConflictError{Conflicts: avail.Conflicts}
	}

	r.calls = append(r.calls, c)
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.calls {
		if r.calls[i].ID == id {
			r.calls = append(r.calls[:i], r.calls[i+1:]...)
			return nil
		}
	}
	// Idempotent: already gone.
	return nil
}
