// cmd/tools/worker-generator/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loan-marketplace-workers/pkg/registry"
)

func newRootCmd() *cobra.Command {
	var registryPath, outputDir string
	var force bool

	cmd := &cobra.Command{
		Use:   "worker-generator <task-type>",
		Short: "Scaffold a worker package from its registry entry",
		Example: `  worker-generator loans-by-type
  worker-generator chat-assistant --output ./internal/workers --force`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(registryPath)
			if err != nil {
				return fmt.Errorf("load registry %s: %w", registryPath, err)
			}

			a, ok := reg.Find(args[0])
			if !ok {
				return fmt.Errorf("task type %q not found in %s", args[0], registryPath)
			}

			files, err := generate(a, outputDir, force)
			if err != nil {
				return err
			}
			for _, f := range files {
				cmd.Printf("generated %s\n", f)
			}
			cmd.Println("\nNext: implement execute in handler.go and register the handler in cmd/worker-manager/workers.go")
			return nil
		},
	}

	cmd.Flags().StringVar(&registryPath, "registry", "configs/activity-registry.json", "Path to the activity registry")
	cmd.Flags().StringVar(&outputDir, "output", "./internal/workers", "Root directory for worker packages")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
