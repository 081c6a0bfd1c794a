// Package main contains control API command line client.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
)

func main() {
	opts := &globalOptions{}
	parser := newParser(opts, os.Stdout)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, flagsErr.Message) // nolint: errcheck
			return
		}

		color.New(color.FgRed).Fprintln(os.Stderr, err.Error()) // nolint: errcheck
		os.Exit(1)
	}
}
