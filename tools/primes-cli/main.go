/*
Copyright © 2024 John Doak <doak@askdoak.com>
*/
package main

import "github.com/gostdlib/primes/tools/primes-cli/cmd"

func main() {
	cmd.Execute()
}
