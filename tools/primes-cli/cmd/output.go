/*
Copyright © 2024 John Doak <doak@askdoak.com>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gostdlib/primes/runner"
)

// printer renders counters with thousands separators, like 78,498.
var printer = message.NewPrinter(language.English)

// sectionWidth is how many of the smallest and largest primes the reduced
// view shows.
const sectionWidth = 20

// printResults writes the full post-run report for a completed Runner.
func printResults(w io.Writer, r *runner.Runner) error {
	d, err := r.TotalDuration()
	if err != nil {
		return err
	}
	primes, err := r.Results()
	if err != nil {
		return err
	}

	printRunnerInformation(w, r)
	printReducedPrimes(w, primes, sectionWidth)
	printer.Fprintf(w, "Total prime numbers found: %d\n", len(primes))
	printer.Fprintf(w, "Total computation time: %d ms\n", d.Milliseconds())
	fmt.Fprintln(w)
	return nil
}

func printRunnerInformation(w io.Writer, r *runner.Runner) {
	printer.Fprintf(w, "Upper bound for prime search: %d\n", r.UpperBound())
	fmt.Fprintf(
		w,
		"Total number of threads: %d (%d/%d failed)\n",
		r.ThreadCount(),
		r.Interrupted(),
		r.ThreadCount()-r.Interrupted(),
	)
	printer.Fprintf(w, "Dynamic block size chosen: %d\n\n", r.BlockSize())
}

// printReducedPrimes shows only the smallest and largest sectionWidth primes.
// On small results the two sections may overlap; that is called out rather
// than deduplicated.
func printReducedPrimes(w io.Writer, primes []int64, width int) {
	if len(primes) == 0 {
		fmt.Fprintln(w, "No prime numbers were found.")
		return
	}

	first := width
	if first > len(primes) {
		first = len(primes)
	}
	lastStart := len(primes) - width
	if lastStart < 0 {
		lastStart = 0
	}
	if lastStart < first {
		fmt.Fprintln(w, "(Note: smallest and largest sections may overlap)")
	}

	fmt.Fprintf(w, "Smallest %d prime numbers: %s\n", first, joinPrimes(primes[:first]))
	fmt.Fprintf(w, "Largest %d prime numbers: %s\n", len(primes)-lastStart, joinPrimes(primes[lastStart:]))
}

func joinPrimes(primes []int64) string {
	b := strings.Builder{}
	b.WriteString("[")
	for i, p := range primes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(printer.Sprintf("%d", p))
	}
	b.WriteString("]")
	return b.String()
}
