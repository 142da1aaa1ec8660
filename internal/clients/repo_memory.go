package clients

import (
	"context"
	"sync"
)

// MemoryDirectory is an in-memory client directory for tests and local runs.

type MemoryDirectory struct {
	mu      sync.RWMutex
	byID    map[string]Client
	ordered []string
}

func NewMemoryDirectory(seed ...Client) *MemoryDirectory {
	d := &MemoryDirectory{byID: make(map[string]Client, len(seed))}
	for _, c := range seed {
		if _, exists := d.byID[c.ID]; !exists {
			d.ordered = append(d.ordered, c.ID)
		}
		d.byID[c.ID] = c
	}
	return d
}

func (d *MemoryDirectory) Get(ctx context.Context, id string) (Client, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.byID[id]
	if !ok {
		return Client{}, ErrNotFound
	}
	return c, nil
}

func (d *MemoryDirectory) List(ctx context.Context) ([]Client, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Client, 0, len(d.ordered))
	for _, id := range d.ordered {
		out = append(out, d.byID[id])
	}
	return out, nil
}

// DemoRoster returns the seed directory used for local development.
func DemoRoster() []Client {
	return []Client{
		{ID: "1", Name: "Rahul Sharma", Phone: "+91 98765 43210"},
		{ID: "2", Name: "Priya Patel", Phone: "+91 87654 32109"},
		{ID: "3", Name: "Sriram Krishnan", Phone: "+91 76543 21098"},
		{ID: "4", Name: "Shilpa Reddy", Phone: "+91 65432 10987"},
		{ID: "5", Name: "Amit Agarwal", Phone: "+91 54321 09876"},
		{ID: "6", Name: "Neha Singh", Phone: "+91 43210 98765"},
		{ID: "7", Name: "Vikram Malhotra", Phone: "+91 32109 87654"},
		{ID: "8", Name: "Deepika Jain", Phone: "+91 21098 76543"},
		{ID: "9", Name: "Arjun Nair", Phone: "+91 10987 65432"},
		{ID: "10", Name: "Kavya Iyer", Phone: "+91 09876 54321"},
		{ID: "11", Name: "Rohit Gupta", Phone: "+91 98765 43212"},
		{ID: "12", Name: "Anita Verma", Phone: "+91 87654 32101"},
		{ID: "13", Name: "Suresh Kumar", Phone: "+91 76543 21090"},
		{ID: "14", Name: "Meera Joshi", Phone: "+91 65432 10989"},
		{ID: "15", Name: "Karan Chopra", Phone: "+91 54321 09878"},
		{ID: "16", Name: "Ritu Bansal", Phone: "+91 43210 98767"},
		{ID: "17", Name: "Manoj Tiwari", Phone: "+91 32109 87656"},
		{ID: "18", Name: "Sunita Mehta", Phone: "+91 21098 76545"},
		{ID: "19", Name: "Ajay Rao", Phone: "+91 10987 65434"},
		{ID: "20", Name: "Pooja Saxena", Phone: "+91 09876 54323"},
	}
}
