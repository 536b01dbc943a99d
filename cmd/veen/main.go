// Package main provides the veen command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "veen",
	Short: "Tailor resumes to job descriptions from the terminal",
	Long:  "veen runs the same tailoring pipeline as the Veen API: it reads a resume file, asks the configured AI provider to rewrite it for a job description and prints the tailored plain text.",
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
