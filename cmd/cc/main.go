// Command cc is the minicc compiler driver: lex, parse, type-assign,
// and generate x86-64 assembly from a single translation unit.
package main

import (
	"os"

	"github.com/minicc/minicc/cmd/cc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
