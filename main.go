// main is the entry point for the episcope CLI.
package main

import (
	"os"

	"github.com/epitools/episcope/cmd"
	"github.com/epitools/episcope/internal"
)

func main() {
	if err := cmd.Execute(); err != nil {
		internal.LogWarn("episcope exited with error", err)
		os.Exit(1)
	}
}
