// cmd/tools/score-profile/main.go
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "score-profile",
	Short: "Run the eligibility engine outside Zeebe",
	Long: `Scores a borrower profile against the loan catalog and prints the
eligibility result with the recommendations that would be saved.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newFileCmd(), newDBCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
