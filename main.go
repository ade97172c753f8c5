// Package main is the entry point for the burstgen capture synthesizer.
package main

import (
	"fmt"
	"os"

	"firestige.xyz/burstgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
