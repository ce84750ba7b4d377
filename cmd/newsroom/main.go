package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/newsroom/internal/cli"
	"github.com/ppiankov/newsroom/internal/setup"
)

func main() {
	if err := cli.Execute(); err != nil {
		// The report already explains failed checks
		if !errors.Is(err, setup.ErrChecksFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
