package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		bad.Fprintf(os.Stderr, "universe: %v\n", err)
		os.Exit(1)
	}
}
