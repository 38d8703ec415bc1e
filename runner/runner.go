/*
Package runner coordinates a parallel prime computation over [2, upper bound].

A Runner owns one computation: it derives the block size, precomputes the
base-prime table when the segmented sieve is selected, and runs one worker
goroutine per configured thread. All workers share a single checkers.Cursor
for scheduling and a single checkers.Sink for results. After every worker has
joined, the Runner sorts the sink and exposes the sorted primes and the total
wall time.

	r, err := runner.New("primes", runtime.NumCPU(), 1_000_000, runner.WithSieve())
	if err != nil {
		// Handle error.
	}
	if err := r.Run(context.Background()); err != nil {
		// Handle error.
	}
	primes, err := r.Results()
	if err != nil {
		// Handle error.
	}

A Runner is single use; construct a new one for each computation. Cancelling
the Context passed to Run interrupts workers between blocks: interrupted
workers are counted (see Interrupted), their unflushed results are dropped,
and the run still completes with what the remaining workers produced.

This package supports OTEL spans and will record run information if a
recording span is on the Context.
*/
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gostdlib/internals/otel/span"
	"go.opentelemetry.io/otel/codes"

	"github.com/go-json-experiment/json"
	"github.com/johnsiilver/calloptions"

	"github.com/gostdlib/primes/checkers"
)

// ErrNotCompleted is returned by accessors that are only valid once Run has
// returned, such as Results and TotalDuration.
var ErrNotCompleted = errors.New("runner: run has not completed")

// Runner executes one parallel prime computation.
type Runner struct {
	name string
	id   string

	threads    int
	upperBound int64
	useSieve   bool

	basePrimes  []int64
	initElapsed time.Duration

	cursor  *checkers.Cursor
	sink    *checkers.Sink
	workers []checkers.Checker

	started     atomic.Bool
	completed   atomic.Bool
	interrupted atomic.Int64

	timeStart time.Time
	timeEnd   time.Time
}

// New creates a Runner that will search [2, upperBound] with "threads"
// workers. "name" names the run for OTEL events. The algorithm defaults to
// trial division; pass WithSieve() for the segmented Sieve of Eratosthenes.
// Thread counts far above what the range can occupy are explicitly allowed.
func New(name string, threads int, upperBound int64, options ...Option) (*Runner, error) {
	if threads < 1 {
		return nil, fmt.Errorf("runner: thread count must be at least 1, got %d", threads)
	}
	if upperBound < 1 {
		return nil, fmt.Errorf("runner: upper bound must be at least 1, got %d", upperBound)
	}

	opts := &runnerOpts{}
	if err := calloptions.ApplyOptions(opts, options); err != nil {
		return nil, err
	}

	blockSize := opts.blockSize
	if blockSize == 0 {
		blockSize = checkers.DefaultBlockSize(upperBound)
	}
	cursor, err := checkers.NewCursor(blockSize)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		name:       name,
		id:         uuid.New().String(),
		threads:    threads,
		upperBound: upperBound,
		useSieve:   opts.useSieve,
		cursor:     cursor,
		sink:       &checkers.Sink{},
	}

	// The base-prime table is built here, on the constructing goroutine,
	// so it is complete and visible before any worker can start.
	if r.useSieve {
		now := time.Now()
		r.basePrimes = checkers.BasePrimes(upperBound)
		r.initElapsed = time.Since(now)
	}

	cfg := checkers.Config{Sink: r.sink, Cursor: cursor, UpperBound: upperBound}
	r.workers = make([]checkers.Checker, threads)
	for i := range r.workers {
		var c checkers.Checker
		var err error
		if r.useSieve {
			c, err = checkers.NewSieve(cfg, r.basePrimes)
		} else {
			c, err = checkers.NewTrial(cfg)
		}
		if err != nil {
			return nil, err
		}
		r.workers[i] = c
	}
	return r, nil
}

// Run executes the computation. It blocks until every worker has finished or
// given up on a cancelled Context. Workers interrupted mid-run are counted
// without aborting the join of the others. Run may only be called once per
// Runner.
func (r *Runner) Run(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return fmt.Errorf("runner: Run() may only be called once per Runner")
	}

	spanner := span.Get(ctx)
	r.otelStart(spanner)

	r.timeStart = time.Now()

	wg := sync.WaitGroup{}
	for i := range r.workers {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.workers[i].Run(ctx); err != nil {
				r.interrupted.Add(1)
				spanner.Event("worker interrupted", "name", r.name, "worker", i, "err", err.Error())
			}
		}()
	}
	wg.Wait()

	r.timeEnd = time.Now()

	// All writers have joined; the sink now has a single owner.
	r.sink.Sort()
	r.completed.Store(true)

	r.otelEnd(spanner)
	return nil
}

// Results returns the primes found, sorted ascending. Only valid after Run
// has returned; before that it returns ErrNotCompleted. The returned slice is
// the Runner's backing store, not a copy.
func (r *Runner) Results() ([]int64, error) {
	if !r.completed.Load() {
		return nil, ErrNotCompleted
	}
	return r.sink.Primes(), nil
}

// TotalDuration returns the wall time of Run plus any one-time base-prime
// precompute cost. It returns ErrNotCompleted before a completed run and an
// error if the measured duration is negative (the clock went backwards).
func (r *Runner) TotalDuration() (time.Duration, error) {
	if !r.completed.Load() {
		return 0, ErrNotCompleted
	}
	d := r.timeEnd.Sub(r.timeStart) + r.initElapsed
	if d < 0 {
		return 0, fmt.Errorf("runner: measured duration %v is negative", d)
	}
	return d, nil
}

// ThreadCount returns the number of workers the Runner was built with.
func (r *Runner) ThreadCount() int {
	return r.threads
}

// UpperBound returns the inclusive top of the search range.
func (r *Runner) UpperBound() int64 {
	return r.upperBound
}

// BlockSize returns the block size workers claim by.
func (r *Runner) BlockSize() int64 {
	return r.cursor.BlockSize()
}

// Interrupted returns how many workers gave up on a cancelled Context during
// Run. Their unflushed results are absent from Results; no other worker
// re-claims that work, as the cursor only moves forward.
func (r *Runner) Interrupted() int {
	return int(r.interrupted.Load())
}

// PrecomputeDuration returns the time spent building the base-prime table.
// Zero in trial mode.
func (r *Runner) PrecomputeDuration() time.Duration {
	return r.initElapsed
}

// Name returns the name given to New.
func (r *Runner) Name() string {
	return r.name
}

// ID returns the unique ID assigned to this Runner.
func (r *Runner) ID() string {
	return r.id
}

func (r *Runner) otelStart(spanner span.Span) {
	if spanner.Span == nil || !spanner.Span.IsRecording() {
		return
	}
	spanner.Event(
		"Runner.Run() called",
		"name", r.name,
		"id", r.id,
		"threads", r.threads,
		"upper_bound", r.upperBound,
		"block_size", r.cursor.BlockSize(),
		"sieve", r.useSieve,
		"precompute_ns", r.initElapsed,
	)
}

// runStats is marshalled into the end-of-run span event.
type runStats struct {
	Name        string
	ID          string
	Threads     int
	UpperBound  int64
	Sieve       bool
	PrimesFound int
	Interrupted int64
}

func (r *Runner) otelEnd(spanner span.Span) {
	if spanner.Span == nil || !spanner.Span.IsRecording() {
		return
	}
	if n := r.interrupted.Load(); n > 0 {
		spanner.Status(codes.Error, fmt.Sprintf("%d of %d workers were interrupted", n, r.threads))
	}

	j, err := json.Marshal(
		runStats{
			Name:        r.name,
			ID:          r.id,
			Threads:     r.threads,
			UpperBound:  r.upperBound,
			Sieve:       r.useSieve,
			PrimesFound: r.sink.Len(),
			Interrupted: r.interrupted.Load(),
		},
	)
	if err != nil {
		j = []byte(fmt.Sprintf("Error marshaling stats: %s", err.Error()))
	}
	spanner.Event(
		"Runner.Run() done",
		"name", r.name,
		"stats", string(j),
		"elapsed_ns", r.timeEnd.Sub(r.timeStart)+r.initElapsed,
	)
}
