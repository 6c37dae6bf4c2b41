// Command contentctl is the operator CLI for the content graph.
package main

import (
	"fmt"
	"os"

	"github.com/ludora/content-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
