// cmd/tools/registry-updater/commands.go
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"loan-marketplace-workers/internal/common/validation"
	"loan-marketplace-workers/pkg/registry"
)

func newAddCmd() *cobra.Command {
	a := registry.Activity{Version: "1.0.0", ImplementationStatus: "planned", Timeout: "10s", Retries: 3}
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a new activity to the registry",
		Example: `  registry-updater add --id loans-by-type --display-name "Loans By Type" --category catalog --task-type loans-by-type`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.ID == "" || a.DisplayName == "" || a.Category == "" {
				return errors.New("id, display-name and category are required")
			}
			if a.TaskType == "" {
				a.TaskType = a.ID
			}
			if err := addActivity(registryPath, a); err != nil {
				return err
			}
			cmd.Printf("Added activity: %s\n", a.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&a.ID, "id", "", "Activity ID")
	f.StringVar(&a.DisplayName, "display-name", "", "Display name")
	f.StringVar(&a.Description, "description", "", "Description")
	f.StringVar(&a.Category, "category", "", "Category (eligibility, profile, catalog, application, ai-conversation)")
	f.StringVar(&a.TaskType, "task-type", "", "Zeebe task type, defaults to the id")
	f.StringVar(&a.Version, "version", a.Version, "Version")
	f.StringVar(&a.ImplementationStatus, "status", a.ImplementationStatus, "planned or implemented")
	return cmd
}

func newUpdateCmd() *cobra.Command {
	var id, field, value string
	cmd := &cobra.Command{
		Use:     "update",
		Short:   "Update one field of an existing activity",
		Example: `  registry-updater update --id chat-assistant --field status --value implemented`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" || field == "" || value == "" {
				return errors.New("id, field and value are required")
			}
			if err := updateActivity(registryPath, id, field, value); err != nil {
				return err
			}
			cmd.Printf("Updated activity %s, field %s to %s\n", id, field, value)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Activity ID to update")
	cmd.Flags().StringVar(&field, "field", "", "Field to update (status, version, displayName, description, category, timeout, retries)")
	cmd.Flags().StringVar(&value, "value", "", "New value for the field")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check required fields and compile every input schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := validateRegistry(registryPath)
			if err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			cmd.Printf("Registry validation passed. Found %d activities.\n", n)
			return nil
		},
	}
}

func addActivity(path string, activity registry.Activity) error {
	reg, err := registry.LoadRegistry(path)
	if errors.Is(err, os.ErrNotExist) {
		reg = &registry.ActivityRegistry{Version: "1.0.0"}
	} else if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	for _, existing := range reg.Activities {
		if existing.ID == activity.ID || existing.TaskType == activity.TaskType {
			return fmt.Errorf("activity %s already exists", activity.ID)
		}
	}
	if activity.ErrorCodes == nil {
		activity.ErrorCodes = []string{}
	}

	reg.Activities = append(reg.Activities, activity)
	return saveRegistry(reg, path)
}

func updateActivity(path, id, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	var a *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == id {
			a = &reg.Activities[i]
			break
		}
	}
	if a == nil {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	switch field {
	case "status":
		if value != registry.StatusImplemented && value != "planned" {
			return fmt.Errorf("invalid status %q", value)
		}
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "displayName":
		a.DisplayName = value
	case "description":
		a.Description = value
	case "category":
		a.Category = value
	case "timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout value: %w", err)
		}
		a.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	return saveRegistry(reg, path)
}

// validateRegistry returns the number of activities checked.
func validateRegistry(path string) (int, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return 0, err
	}
	if len(reg.Activities) == 0 {
		return 0, errors.New("registry contains no activities")
	}

	ids := make(map[string]bool, len(reg.Activities))
	for _, a := range reg.Activities {
		switch {
		case a.ID == "":
			return 0, fmt.Errorf("activity %s missing required field: id", a.TaskType)
		case ids[a.ID]:
			return 0, fmt.Errorf("duplicate activity ID: %s", a.ID)
		case a.DisplayName == "":
			return 0, fmt.Errorf("activity %s missing required field: displayName", a.ID)
		case a.Category == "":
			return 0, fmt.Errorf("activity %s missing required field: category", a.ID)
		}
		ids[a.ID] = true
	}

	if _, err := validation.NewValidator(reg); err != nil {
		return 0, err
	}
	return len(reg.Activities), nil
}

func saveRegistry(reg *registry.ActivityRegistry, path string) error {
	reg.LastUpdated = time.Now().UTC().Format("2006-01-02")

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}
