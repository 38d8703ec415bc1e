package checkers

import (
	"context"
)

// Trial is a Checker that tests every candidate in its claimed blocks by
// trial division. It is the baseline the segmented sieve is measured against;
// its per-candidate cost grows with sqrt(n), so it slows non-linearly on
// large ranges. That is expected, not a defect.
type Trial struct {
	cfg Config
}

// NewTrial returns a trial-division Checker sharing cfg's Cursor and Sink.
func NewTrial(cfg Config) (*Trial, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Trial{cfg: cfg}, nil
}

// Run implements Checker.Run. Primes accumulate in a worker-local buffer
// sized to the block span and are flushed to the Sink once, after the final
// block. One synchronized append per worker instead of one per prime found.
func (t *Trial) Run(ctx context.Context) error {
	local := make([]int64, 0, t.cfg.Cursor.BlockSize())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := t.cfg.Cursor.Claim()
		if start > t.cfg.UpperBound {
			break
		}
		end := start + t.cfg.Cursor.BlockSize() - 1
		if end > t.cfg.UpperBound {
			end = t.cfg.UpperBound
		}
		local = appendPrimesInRange(local, start, end)
	}

	t.cfg.Sink.Append(local)
	return nil
}

// IsPrime reports whether n is prime by trial division. It fails closed:
// anything below 2 is not prime. Divisors run 2 through floor(sqrt(n)),
// tracked as i*i <= n to stay in integer arithmetic.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for i := int64(2); i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// PrimesInRange returns all primes in [start, end] by trial division. An
// empty (non-nil) slice is returned when the range holds no candidates.
func PrimesInRange(start, end int64) []int64 {
	return appendPrimesInRange([]int64{}, start, end)
}

func appendPrimesInRange(dst []int64, start, end int64) []int64 {
	if end < firstCandidate || start > end {
		return dst
	}
	if start < firstCandidate {
		start = firstCandidate
	}
	for n := start; n <= end; n++ {
		if IsPrime(n) {
			dst = append(dst, n)
		}
	}
	return dst
}
