// Command meekc compiles a single Meek source file to bytecode.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/meekc/cmd/meekc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
