package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "studymatectl",
	Short: "A command-line client for the StudyMate service",
	Long: `studymatectl talks to a running StudyMate server over HTTP.
It can upload PDF documents for indexing, ask questions against the
indexed material, and report index statistics.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the StudyMate server")
}
