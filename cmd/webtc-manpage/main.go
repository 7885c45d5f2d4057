package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/webtc/cmd/webtc"
	"github.com/arthur-debert/webtc/internal/version"
)

func main() {
	rootCmd := webtc.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "WEBTC",
		Section: "1",
		Source:  "webtc " + version.Version,
		Manual:  "webtc manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
