package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/gostdlib/primes/checkers"
)

func TestNew(t *testing.T) {
	tests := []struct {
		desc       string
		threads    int
		upperBound int64
		options    []Option
		err        bool
	}{
		{desc: "error: zero threads", threads: 0, upperBound: 100, err: true},
		{desc: "error: negative threads", threads: -4, upperBound: 100, err: true},
		{desc: "error: zero upper bound", threads: 1, upperBound: 0, err: true},
		{desc: "error: negative upper bound", threads: 1, upperBound: -10, err: true},
		{desc: "error: zero threads with sieve", threads: 0, upperBound: 100, options: []Option{WithSieve()}, err: true},
		{desc: "error: zero upper bound with sieve", threads: 1, upperBound: 0, options: []Option{WithSieve()}, err: true},
		{desc: "error: bad block size", threads: 1, upperBound: 100, options: []Option{WithBlockSize(0)}, err: true},
		{desc: "error: negative block size", threads: 1, upperBound: 100, options: []Option{WithBlockSize(-1)}, err: true},
		{desc: "upper bound of 1 is valid and empty", threads: 1, upperBound: 1},
		{desc: "more threads than candidates is allowed", threads: 100, upperBound: 10},
		{desc: "sieve mode", threads: 4, upperBound: 1000, options: []Option{WithSieve()}},
	}

	for _, test := range tests {
		r, err := New("test", test.threads, test.upperBound, test.options...)
		switch {
		case err == nil && test.err:
			t.Errorf("TestNew(%s): want err != nil, got err == nil", test.desc)
			continue
		case err != nil && !test.err:
			t.Errorf("TestNew(%s): got err == %s, want err == nil", test.desc, err)
			continue
		case err != nil:
			continue
		}

		if r.ThreadCount() != test.threads {
			t.Errorf("TestNew(%s): ThreadCount() == %d, want %d", test.desc, r.ThreadCount(), test.threads)
		}
		if r.UpperBound() != test.upperBound {
			t.Errorf("TestNew(%s): UpperBound() == %d, want %d", test.desc, r.UpperBound(), test.upperBound)
		}
		if r.ID() == "" {
			t.Errorf("TestNew(%s): ID() is empty", test.desc)
		}
	}
}

func TestAccessorsBeforeRun(t *testing.T) {
	r, err := New("test", 2, 1000)
	if err != nil {
		t.Fatalf("TestAccessorsBeforeRun: New: %s", err)
	}

	if _, err := r.Results(); !errors.Is(err, ErrNotCompleted) {
		t.Errorf("TestAccessorsBeforeRun: Results() err == %v, want ErrNotCompleted", err)
	}
	if _, err := r.TotalDuration(); !errors.Is(err, ErrNotCompleted) {
		t.Errorf("TestAccessorsBeforeRun: TotalDuration() err == %v, want ErrNotCompleted", err)
	}
}

func TestRunOnce(t *testing.T) {
	ctx := context.Background()

	r, err := New("test", 2, 1000)
	if err != nil {
		t.Fatalf("TestRunOnce: New: %s", err)
	}
	if err := r.Run(ctx); err != nil {
		t.Fatalf("TestRunOnce: Run: %s", err)
	}
	if err := r.Run(ctx); err == nil {
		t.Errorf("TestRunOnce: second Run: want err != nil, got err == nil")
	}
}

// TestThreadCountInvariance runs the same small range with 1 and 3 workers
// over multiple blocks; the sorted result must be identical.
func TestThreadCountInvariance(t *testing.T) {
	ctx := context.Background()

	for _, mode := range []string{"trial", "sieve"} {
		for _, threads := range []int{1, 3} {
			options := []Option{WithBlockSize(50)}
			if mode == "sieve" {
				options = append(options, WithSieve())
			}

			r, err := New("test", threads, 200, options...)
			if err != nil {
				t.Fatalf("TestThreadCountInvariance(%s, %d threads): New: %s", mode, threads, err)
			}
			if err := r.Run(ctx); err != nil {
				t.Fatalf("TestThreadCountInvariance(%s, %d threads): Run: %s", mode, threads, err)
			}

			got, err := r.Results()
			if err != nil {
				t.Fatalf("TestThreadCountInvariance(%s, %d threads): Results: %s", mode, threads, err)
			}
			if len(got) != 46 {
				t.Errorf("TestThreadCountInvariance(%s, %d threads): found %d primes, want 46", mode, threads, len(got))
			}
			want := checkers.PrimesInRange(2, 200)
			if diff := pretty.Compare(want, got); diff != "" {
				t.Errorf("TestThreadCountInvariance(%s, %d threads): -want/+got:\n%s", mode, threads, diff)
			}
		}
	}
}

// TestTrialVsSieveMillion checks the classic π(10⁶) = 78,498 under both
// algorithms and that the full sorted lists are identical.
func TestTrialVsSieveMillion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 10⁶ sweep in -short mode")
	}
	ctx := context.Background()

	run := func(options ...Option) []int64 {
		r, err := New("test", 4, 1_000_000, options...)
		if err != nil {
			t.Fatalf("TestTrialVsSieveMillion: New: %s", err)
		}
		if err := r.Run(ctx); err != nil {
			t.Fatalf("TestTrialVsSieveMillion: Run: %s", err)
		}
		primes, err := r.Results()
		if err != nil {
			t.Fatalf("TestTrialVsSieveMillion: Results: %s", err)
		}
		return primes
	}

	trial := run()
	sieved := run(WithSieve())

	if len(trial) != 78_498 {
		t.Fatalf("TestTrialVsSieveMillion: trial found %d primes, want 78498", len(trial))
	}
	if len(sieved) != 78_498 {
		t.Fatalf("TestTrialVsSieveMillion: sieve found %d primes, want 78498", len(sieved))
	}
	for i := range trial {
		if trial[i] != sieved[i] {
			t.Fatalf("TestTrialVsSieveMillion: lists diverge at index %d: trial %d, sieve %d", i, trial[i], sieved[i])
		}
	}
}

func TestRunCompletes(t *testing.T) {
	ctx := context.Background()

	r, err := New("test", 4, 50_000, WithSieve())
	if err != nil {
		t.Fatalf("TestRunCompletes: New: %s", err)
	}
	if err := r.Run(ctx); err != nil {
		t.Fatalf("TestRunCompletes: Run: %s", err)
	}

	d, err := r.TotalDuration()
	if err != nil {
		t.Fatalf("TestRunCompletes: TotalDuration: %s", err)
	}
	if d < 0 {
		t.Errorf("TestRunCompletes: TotalDuration() == %v, want >= 0", d)
	}
	if d < r.PrecomputeDuration() {
		t.Errorf("TestRunCompletes: TotalDuration() %v is below PrecomputeDuration() %v", d, r.PrecomputeDuration())
	}
	if r.Interrupted() != 0 {
		t.Errorf("TestRunCompletes: Interrupted() == %d, want 0", r.Interrupted())
	}
}

// TestInterrupted cancels the Context before Run. Every worker gives up on
// its first claim check, the run still completes, and the loss is visible in
// Interrupted() rather than an error.
func TestInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	const threads = 4
	r, err := New("test", threads, 1_000_000)
	if err != nil {
		t.Fatalf("TestInterrupted: New: %s", err)
	}
	if err := r.Run(ctx); err != nil {
		t.Fatalf("TestInterrupted: Run: %s", err)
	}

	if r.Interrupted() != threads {
		t.Errorf("TestInterrupted: Interrupted() == %d, want %d", r.Interrupted(), threads)
	}
	primes, err := r.Results()
	if err != nil {
		t.Fatalf("TestInterrupted: Results: %s", err)
	}
	if len(primes) != 0 {
		t.Errorf("TestInterrupted: got %d primes from a fully interrupted run, want 0", len(primes))
	}
	if _, err := r.TotalDuration(); err != nil {
		t.Errorf("TestInterrupted: TotalDuration: %s", err)
	}
}
