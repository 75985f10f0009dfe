package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rosidl-go/msggen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Commands report their exit status through ExitError; everything
		// else is a usage or setup failure.
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
