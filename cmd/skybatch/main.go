package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skybatch",
	Short: "Prepare execution batches for the SKYSIM sky radiance solver",
	Long: `skybatch expands an experiment configuration into every valid parameter
combination, materializes one symlinked sandbox per combination, writes the
solver's input file for each run and emits the manifest and batch files an
external dispatcher consumes.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
