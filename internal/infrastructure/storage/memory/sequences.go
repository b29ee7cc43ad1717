package memory

import (
	"context"
	"sync"

	"defter/pkg/numerator"
)

// Sequences implements numerator.Sequences with mutex-guarded counters.
// Counters only ever move forward; deleting a document does not roll them
// back, so issued numbers are never reused within the store's lifetime.
type Sequences struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewSequences creates an empty sequence store.
func NewSequences() *Sequences {
	return &Sequences{
		counters: make(map[string]int64),
	}
}

// Next increments the counter for key and returns the new value.
func (s *Sequences) Next(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[key]++
	return s.counters[key], nil
}

// Advance moves the counter for key forward to at least value.
// Used by seeding to keep counters ahead of pre-loaded document numbers.
func (s *Sequences) Advance(ctx context.Context, key string, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counters[key] < value {
		s.counters[key] = value
	}
	return nil
}

var _ numerator.Sequences = (*Sequences)(nil)
