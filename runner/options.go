package runner

import (
	"fmt"
	"math"

	"github.com/johnsiilver/calloptions"
)

type runnerOpts struct {
	useSieve  bool
	blockSize int64
}

// Option is an option for New().
type Option interface {
	runner()
}

// WithSieve selects the segmented Sieve of Eratosthenes instead of trial
// division. This can be used as a:
// - Option
func WithSieve() interface {
	Option
	calloptions.CallOption
} {
	return struct {
		Option
		calloptions.CallOption
	}{
		CallOption: calloptions.New(
			func(a any) error {
				switch t := a.(type) {
				case *runnerOpts:
					t.useSieve = true
					return nil
				}
				return fmt.Errorf("WithSieve can only be used with Option")
			},
		),
	}
}

// WithBlockSize overrides the derived block size. This is mostly useful in
// tests that need several blocks over a small range. n must be in
// [1, math.MaxInt32]. This can be used as a:
// - Option
func WithBlockSize(n int64) interface {
	Option
	calloptions.CallOption
} {
	return struct {
		Option
		calloptions.CallOption
	}{
		CallOption: calloptions.New(
			func(a any) error {
				switch t := a.(type) {
				case *runnerOpts:
					if n < 1 || n > math.MaxInt32 {
						return fmt.Errorf("WithBlockSize must be in [1, %d], got %d", math.MaxInt32, n)
					}
					t.blockSize = n
					return nil
				}
				return fmt.Errorf("WithBlockSize can only be used with Option")
			},
		),
	}
}
