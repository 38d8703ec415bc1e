package checkers

import (
	"fmt"
	"math"
	"sync/atomic"
)

// firstCandidate is where every run starts; nothing below 2 is prime.
const firstCandidate = 2

// Cursor hands out the start of the next unclaimed block of the search range.
// It is the only coordination between workers: one atomic fetch-and-add, so a
// claim never blocks the caller and no two claims overlap. A claimed start
// greater than the upper bound is the sole termination signal; there is no
// separate done flag. A Cursor is good for one run.
type Cursor struct {
	next      atomic.Int64
	blockSize int64
}

// NewCursor returns a Cursor seeded at 2 that advances by blockSize per
// claim. blockSize bounds the span of a segment buffer, so it must fit in an
// int32.
func NewCursor(blockSize int64) (*Cursor, error) {
	if blockSize < 1 || blockSize > math.MaxInt32 {
		return nil, fmt.Errorf("checkers: block size must be in [1, %d], got %d", math.MaxInt32, blockSize)
	}
	c := &Cursor{blockSize: blockSize}
	c.next.Store(firstCandidate)
	return c, nil
}

// Claim returns the start of the next unclaimed block [start, start+BlockSize).
// When the returned start exceeds the run's upper bound, the caller must stop:
// the whole range has been claimed.
func (c *Cursor) Claim() int64 {
	return c.next.Add(c.blockSize) - c.blockSize
}

// BlockSize returns the span the Cursor advances by on each claim.
func (c *Cursor) BlockSize() int64 {
	return c.blockSize
}

// DefaultBlockSize derives the block size for a run over [2, upperBound]:
// the larger of 10,000 and floor(sqrt(upperBound)), capped at the int32
// maximum. Large enough to amortize the per-claim synchronization, small
// enough to bound segment memory and keep every worker busy on modest ranges.
func DefaultBlockSize(upperBound int64) int64 {
	if upperBound < 0 {
		upperBound = 0
	}
	size := int64(math.Sqrt(float64(upperBound)))
	if size < 10_000 {
		size = 10_000
	}
	if size > math.MaxInt32 {
		size = math.MaxInt32
	}
	return size
}
