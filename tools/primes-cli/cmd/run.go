/*
Copyright © 2024 John Doak <doak@askdoak.com>
*/
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gostdlib/primes/runner"
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single prime computation",
	Long: `Run computes all primes in [2, max]. Anything not supplied by flag or
environment is prompted for interactively, with invalid input re-prompted:

	primes-cli run
	primes-cli run --threads 8 --max 1000000 --sieve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		threads := viper.GetInt("threads")
		max := viper.GetInt64("max")
		useSieve := viper.GetBool("sieve")

		in := bufio.NewScanner(os.Stdin)
		interactive := threads < 1 || max < 1
		if threads < 1 {
			threads = promptThreadCount(in)
		}
		if max < 1 {
			max = promptUpperBound(in)
		}
		if interactive && !cmd.Flags().Changed("sieve") && !viper.IsSet("sieve") {
			useSieve = promptAlgorithm(in)
		}

		options := []runner.Option{}
		if useSieve {
			options = append(options, runner.WithSieve())
		}

		r, err := runner.New("primescli", threads, max, options...)
		if err != nil {
			return err
		}
		if err := r.Run(cmd.Context()); err != nil {
			return err
		}
		return printResults(os.Stdout, r)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("threads", 0, "Number of worker goroutines (prompted for if unset)")
	runCmd.Flags().Int64("max", 0, "Inclusive upper bound of the prime search (prompted for if unset)")
	runCmd.Flags().Bool("sieve", false, "Use the segmented Sieve of Eratosthenes instead of trial division")

	viper.BindPFlag("threads", runCmd.Flags().Lookup("threads"))
	viper.BindPFlag("max", runCmd.Flags().Lookup("max"))
	viper.BindPFlag("sieve", runCmd.Flags().Lookup("sieve"))
}

// promptThreadCount asks for a worker count until it gets an integer >= 1.
func promptThreadCount(in *bufio.Scanner) int {
	suggested := runtime.NumCPU()

	for {
		fmt.Printf("Please enter the number of threads (suggested: %d): ", suggested)
		if !in.Scan() {
			return suggested
		}
		n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err != nil {
			fmt.Fprintln(os.Stderr, "Invalid input! Please enter a numeric value.")
			continue
		}
		if n < 1 {
			fmt.Fprintln(os.Stderr, "Invalid number! Please enter a number greater than 0.")
			continue
		}
		return n
	}
}

// promptUpperBound asks for the inclusive search bound until it gets an
// integer > 0.
func promptUpperBound(in *bufio.Scanner) int64 {
	for {
		fmt.Print("Please enter the upper bound for prime search (greater than 0): ")
		if !in.Scan() {
			return 1
		}
		n, err := strconv.ParseInt(strings.TrimSpace(in.Text()), 10, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Invalid input! Please enter a numeric value.")
			continue
		}
		if n < 1 {
			fmt.Fprintln(os.Stderr, "Invalid number! Please enter a number greater than 0.")
			continue
		}
		return n
	}
}

// promptAlgorithm asks whether to use the segmented sieve, accepting y or n
// in any case.
func promptAlgorithm(in *bufio.Scanner) bool {
	for {
		fmt.Print("Use the Sieve of Eratosthenes as the prime number checker? (y/n): ")
		if !in.Scan() {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(in.Text())) {
		case "y":
			return true
		case "n":
			return false
		}
		fmt.Fprintln(os.Stderr, "Invalid input! Please enter 'y' or 'n'.")
	}
}
