package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tatianab/kastle/internal/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
