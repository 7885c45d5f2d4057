package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/webtc/cmd/webtc"
	"github.com/arthur-debert/webtc/pkg/errors"
)

func main() {
	rootCmd := webtc.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}
