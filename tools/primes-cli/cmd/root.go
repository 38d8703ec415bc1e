/*
Copyright © 2024 John Doak <doak@askdoak.com>
*/
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "primes-cli",
	Short: "Compute primes in a bounded range with parallel workers",
	Long: `primes-cli computes every prime in [2, max] using parallel workers that
claim disjoint blocks of the range from a shared atomic cursor. Two algorithms
are available: trial division (the default) and a segmented Sieve of
Eratosthenes.

Use "run" for a single computation (prompting for anything not given on the
command line) and "bench" to sweep thread counts and bounds and compare the
two algorithms:

	primes-cli run --threads 8 --max 1000000 --sieve
	primes-cli bench --csv sweep.csv

Flags can also be set through PRIMES_* environment variables.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	viper.SetEnvPrefix("primes")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
