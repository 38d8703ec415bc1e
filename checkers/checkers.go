/*
Package checkers provides the workers that discover primes in a bounded
integer range.

Two Checker implementations are provided: Trial, which tests every candidate
in its claimed blocks by trial division, and Sieve, which marks composites in
each claimed segment using a precomputed table of base primes. Both share the
same scheduling shape: a Cursor hands out disjoint blocks of [2, upper bound]
via a single atomic fetch-and-add, and a Sink receives each worker's locally
buffered results.

Checkers are normally constructed and driven by the runner package. Direct use
looks like:

	cursor, err := checkers.NewCursor(checkers.DefaultBlockSize(1_000_000))
	if err != nil {
		// Handle error.
	}
	sink := &checkers.Sink{}

	c, err := checkers.NewTrial(checkers.Config{Sink: sink, Cursor: cursor, UpperBound: 1_000_000})
	if err != nil {
		// Handle error.
	}

	if err := c.Run(ctx); err != nil {
		// Handle error.
	}
	sink.Sort()

Any number of Checkers may share one Cursor and one Sink; each integer in the
range is processed by exactly one of them.
*/
package checkers

import (
	"context"
	"fmt"
)

// Checker is a unit of execution that claims blocks from a shared Cursor and
// records the primes it finds in a shared Sink, until a claimed block start
// exceeds the upper bound.
type Checker interface {
	// Run claims and processes blocks until the range is exhausted or ctx is
	// cancelled. A cancelled Run returns ctx.Err() and abandons any results
	// it has not yet flushed to the Sink.
	Run(ctx context.Context) error
}

// Config holds what every Checker shares with its peers in a run.
type Config struct {
	// Sink receives the primes found by this Checker.
	Sink *Sink
	// Cursor is the shared claim counter for the run.
	Cursor *Cursor
	// UpperBound is the inclusive top of the search range [2, UpperBound].
	UpperBound int64
}

func (c Config) validate() error {
	if c.Sink == nil {
		return fmt.Errorf("checkers: Config.Sink cannot be nil")
	}
	if c.Cursor == nil {
		return fmt.Errorf("checkers: Config.Cursor cannot be nil")
	}
	if c.UpperBound < 1 {
		return fmt.Errorf("checkers: Config.UpperBound must be at least 1, got %d", c.UpperBound)
	}
	return nil
}
