package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotman/internal/cli"
)

func main() {
	if err := cli.GenManPage(cli.NewRootCmd(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
