// cmd/tools/registry-updater/main.go
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var registryPath string

var rootCmd = &cobra.Command{
	Use:   "registry-updater",
	Short: "Maintain configs/activity-registry.json",
	Long: `Adds and edits task type entries in the activity registry and checks
that every input schema compiles before the worker manager loads it.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&registryPath, "path", "configs/activity-registry.json", "Path to registry file")
	rootCmd.AddCommand(newAddCmd(), newUpdateCmd(), newValidateCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
