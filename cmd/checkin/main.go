package main

import (
	"os"

	"checkin-cli/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		// The failing command already printed the error to stderr.
		os.Exit(1)
	}
}
