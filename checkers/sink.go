package checkers

import (
	"slices"
	"sync"
)

// Sink collects the primes found by every worker in a run. Appends are
// synchronized so workers can flush local batches concurrently; order across
// workers is unspecified until Sort is called. The run has two phases: many
// writers while workers run, then exactly one reader after they have all
// stopped. Sort and Primes belong to the reader phase; the runner enforces
// that by sorting only after joining every worker.
type Sink struct {
	mu     sync.Mutex
	primes []int64
}

// Append adds a worker's local batch to the Sink. It synchronizes once per
// batch, not once per prime.
func (s *Sink) Append(batch []int64) {
	if len(batch) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primes = append(s.primes, batch...)
}

// Len returns the number of primes collected so far.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.primes)
}

// Sort sorts the collected primes ascending, in place. Callers must ensure no
// Append is in flight.
func (s *Sink) Sort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	slices.Sort(s.primes)
}

// Primes returns the Sink's backing slice, not a copy. Only valid once all
// writers have stopped and Sort has been called.
func (s *Sink) Primes() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.primes
}
