// cmd/tools/worker-generator/generate.go
package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"loan-marketplace-workers/pkg/registry"
)

// field is one Input struct field derived from the input schema.
type field struct {
	Name     string
	GoType   string
	JSONName string
	Required bool
}

type workerData struct {
	Package     string
	Dir         string
	TaskType    string
	DisplayName string
	Description string
	Timeout     time.Duration
	Fields      []field
}

func newWorkerData(a registry.Activity) (workerData, error) {
	timeout := 30 * time.Second
	if a.Timeout != "" {
		d, err := time.ParseDuration(a.Timeout)
		if err != nil {
			return workerData{}, fmt.Errorf("activity %s: invalid timeout %q", a.ID, a.Timeout)
		}
		timeout = d
	}
	return workerData{
		Package:     strings.ReplaceAll(a.ID, "-", ""),
		Dir:         filepath.Join(strings.ToLower(a.Category), a.ID),
		TaskType:    a.TaskType,
		DisplayName: a.DisplayName,
		Description: a.Description,
		Timeout:     timeout,
		Fields:      schemaFields(a.InputSchema),
	}, nil
}

// schemaFields lists the top-level properties in name order.
func schemaFields(schema map[string]interface{}) []field {
	props, _ := schema["properties"].(map[string]interface{})
	required := map[string]bool{}
	if req, ok := schema["required"].([]interface{}); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				required[s] = true
			}
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]field, 0, len(names))
	for _, name := range names {
		details, _ := props[name].(map[string]interface{})
		fields = append(fields, field{
			Name:     goName(name),
			GoType:   goType(details["type"]),
			JSONName: name,
			Required: required[name],
		})
	}
	return fields
}

func goType(jsonType interface{}) string {
	switch jsonType {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		return "[]interface{}"
	default:
		return "interface{}"
	}
}

// goName turns profileId into ProfileID.
func goName(jsonName string) string {
	if jsonName == "" {
		return jsonName
	}
	name := strings.ToUpper(jsonName[:1]) + jsonName[1:]
	for _, initialism := range []string{"Id", "Emi", "Url"} {
		if strings.HasSuffix(name, initialism) {
			name = strings.TrimSuffix(name, initialism) + strings.ToUpper(initialism)
		}
	}
	return name
}

var templates = map[string]string{
	"config.go":       configTemplate,
	"models.go":       modelsTemplate,
	"handler.go":      handlerTemplate,
	"handler_test.go": testTemplate,
}

// generate writes the scaffold and returns the files it created.
func generate(a registry.Activity, outputRoot string, force bool) ([]string, error) {
	data, err := newWorkerData(a)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(outputRoot, data.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)

	var written []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil && !force {
			return written, fmt.Errorf("%s exists, use --force to overwrite", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return written, err
		}

		src, err := render(name, templates[name], data)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func render(name, text string, data workerData) ([]byte, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return src, nil
}
