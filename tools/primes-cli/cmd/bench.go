/*
Copyright © 2024 John Doak <doak@askdoak.com>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/jszwec/csvutil"
	"github.com/spf13/cobra"

	"github.com/gostdlib/primes/runner"
)

var (
	benchThreads []int
	benchBounds  []int64
	benchCSV     string
	benchJSON    string
)

// benchRow is one cell of the sweep: an algorithm at a thread count and
// bound.
type benchRow struct {
	Algorithm  string `csv:"algorithm"`
	Threads    int    `csv:"threads"`
	UpperBound int64  `csv:"upper_bound"`
	Primes     int    `csv:"primes"`
	DurationMS int64  `csv:"duration_ms"`
}

// benchCmd represents the bench command.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Sweep thread counts and bounds, comparing both algorithms",
	Long: `Bench runs every combination of --threads and --bounds for trial division
and the segmented sieve, printing a timing line per run and finishing with a
detailed run at the largest configuration. Results can also be written out:

	primes-cli bench
	primes-cli bench --threads 1,8 --bounds 100000,1000000 --csv sweep.csv --json sweep.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("----- Concurrent Prime Number Checker -----")

		rows := []benchRow{}
		for _, alg := range []string{"trial", "sieve"} {
			fmt.Printf("Batch runs with the %s checker:\n", alg)
			for _, bound := range benchBounds {
				for _, threads := range benchThreads {
					row, err := benchOne(cmd.Context(), alg, threads, bound)
					if err != nil {
						return err
					}
					rows = append(rows, row)
					printer.Printf("%s: \tthreads: %d\tmax: %d\t--> %d ms\n", alg, threads, bound, row.DurationMS)
				}
			}
			fmt.Println()
		}

		// A single detailed run at the largest configuration.
		fmt.Println("Single run of the segmented sieve with additional information.")
		r, err := runner.New(
			"primesbench",
			benchThreads[len(benchThreads)-1],
			benchBounds[len(benchBounds)-1],
			runner.WithSieve(),
		)
		if err != nil {
			return err
		}
		if err := r.Run(cmd.Context()); err != nil {
			return err
		}
		if err := printResults(os.Stdout, r); err != nil {
			return err
		}

		if benchCSV != "" {
			b, err := csvutil.Marshal(rows)
			if err != nil {
				return err
			}
			if err := os.WriteFile(benchCSV, b, 0o644); err != nil {
				return err
			}
		}
		if benchJSON != "" {
			b, err := json.Marshal(rows)
			if err != nil {
				return err
			}
			if err := os.WriteFile(benchJSON, b, 0o644); err != nil {
				return err
			}
		}
		return nil
	},
}

func benchOne(ctx context.Context, alg string, threads int, bound int64) (benchRow, error) {
	options := []runner.Option{}
	if alg == "sieve" {
		options = append(options, runner.WithSieve())
	}

	r, err := runner.New("primesbench", threads, bound, options...)
	if err != nil {
		return benchRow{}, err
	}
	if err := r.Run(ctx); err != nil {
		return benchRow{}, err
	}

	d, err := r.TotalDuration()
	if err != nil {
		return benchRow{}, err
	}
	primes, err := r.Results()
	if err != nil {
		return benchRow{}, err
	}

	return benchRow{
		Algorithm:  alg,
		Threads:    threads,
		UpperBound: bound,
		Primes:     len(primes),
		DurationMS: d.Milliseconds(),
	}, nil
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().IntSliceVar(&benchThreads, "threads", []int{1, 4, 12, 24}, "Thread counts to sweep")
	benchCmd.Flags().Int64SliceVar(&benchBounds, "bounds", []int64{100_000, 1_000_000, 5_000_000}, "Upper bounds to sweep")
	benchCmd.Flags().StringVar(&benchCSV, "csv", "", "Write sweep results to this CSV file")
	benchCmd.Flags().StringVar(&benchJSON, "json", "", "Write sweep results to this JSON file")
}
