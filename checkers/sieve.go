package checkers

import (
	"context"
	"fmt"
	"math"
)

// Sieve is a Checker implementing phase two of a segmented Sieve of
// Eratosthenes: it claims disjoint segments of [2, upper bound] and marks
// composites in each one using a shared, read-only table of base primes (see
// BasePrimes for phase one). The table must be fully built before any Sieve
// starts, as workers read it with no further synchronization.
type Sieve struct {
	cfg        Config
	basePrimes []int64
}

// NewSieve returns a segmented-sieve Checker sharing cfg's Cursor and Sink.
// basePrimes must not be nil; an empty table is valid for upper bounds whose
// square root is below 2.
func NewSieve(cfg Config, basePrimes []int64) (*Sieve, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if basePrimes == nil {
		return nil, fmt.Errorf("checkers: base primes cannot be nil for a segmented sieve")
	}
	return &Sieve{cfg: cfg, basePrimes: basePrimes}, nil
}

// Run implements Checker.Run. Each claimed segment gets a fresh candidate
// buffer; survivors are flushed to the Sink once per segment.
func (s *Sieve) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := s.cfg.Cursor.Claim()
		if start > s.cfg.UpperBound {
			return nil
		}
		end := start + s.cfg.Cursor.BlockSize() - 1
		if end > s.cfg.UpperBound {
			end = s.cfg.UpperBound
		}

		seg := newSegment(end - start + 1)
		markSegment(seg, start, end, s.basePrimes)
		s.cfg.Sink.Append(collectPrimes(seg, start))
	}
}

// newSegment returns a candidate buffer for a segment of the given span, all
// cells true. Marking clears composites to false.
func newSegment(span int64) []bool {
	seg := make([]bool, span)
	for i := range seg {
		seg[i] = true
	}
	return seg
}

// markSegment clears every composite in the segment [start, end]. Base primes
// are ascending, so once p exceeds end no later prime has a multiple here and
// the loop stops early. Cells for 0 and 1 are cleared explicitly: they are
// only present in the lowest segment and base-prime marking does not exclude
// them.
func markSegment(seg []bool, start, end int64, basePrimes []int64) {
	for _, p := range basePrimes {
		if p > end {
			break
		}
		markMultiples(seg, start, end, p)
	}

	if start <= 1 {
		for _, v := range []int64{0, 1} {
			if idx := v - start; idx >= 0 && idx < int64(len(seg)) {
				seg[idx] = false
			}
		}
	}
}

// markMultiples clears the multiples of a single base prime p inside
// [start, end]. Marking begins at max(p*p, ceilDiv(start, p)*p): multiples
// below p*p were already eliminated as composites of smaller primes, or are
// at most p itself.
func markMultiples(seg []bool, start, end, p int64) {
	first := p * p
	if m := ceilDiv(start, p) * p; m > first {
		first = m
	}
	if first > end {
		return
	}
	for m := first; m <= end; m += p {
		seg[m-start] = false
	}
}

// ceilDiv returns the smallest q with q*b >= a, for a >= 0 and b > 0. Integer
// arithmetic with a remainder check; floating point loses precision at large
// magnitudes.
func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

// collectPrimes returns the values of all surviving cells as start + index.
func collectPrimes(seg []bool, start int64) []int64 {
	local := []int64{}
	for i, isPrime := range seg {
		if isPrime {
			local = append(local, start+int64(i))
		}
	}
	return local
}

// BasePrimes computes the primes at or below floor(sqrt(upperBound)) with a
// classic non-segmented sieve, ascending. These are the primes whose
// multiples the segment workers mark; every composite in [2, upperBound] has
// a factor in this table. Runs single threaded, once per run, before any
// worker starts, so workers read the table with no synchronization. Returns
// an empty table when floor(sqrt(upperBound)) < 2.
func BasePrimes(upperBound int64) []int64 {
	if upperBound < 0 {
		upperBound = 0
	}
	limit := int64(math.Sqrt(float64(upperBound)))
	if limit < 2 {
		return []int64{}
	}

	isPrime := make([]bool, limit+1)
	for i := range isPrime {
		isPrime[i] = true
	}
	isPrime[0], isPrime[1] = false, false

	for p := int64(2); p*p <= limit; p++ {
		if !isPrime[p] {
			continue
		}
		for m := p * p; m <= limit; m += p {
			isPrime[m] = false
		}
	}

	primes := []int64{}
	for v := int64(2); v <= limit; v++ {
		if isPrime[v] {
			primes = append(primes, v)
		}
	}
	return primes
}
