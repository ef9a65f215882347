package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adgen",
	Short: "Generate AI-powered product advertisement videos",
	Long: `adgen turns a product description and an advertisement brief into a
text-to-video prompt, submits it to the video generation backend, and waits
for the result.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
