// Command karst is the model compiler CLI: it loads annotated model
// packages, builds and validates the entity graph, and generates the
// runtime support code.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
