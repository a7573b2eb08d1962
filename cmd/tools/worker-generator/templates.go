// cmd/tools/worker-generator/templates.go
package main

const configTemplate = `// internal/workers/{{ .Dir }}/config.go
package {{ .Package }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: {{ printf "%d" .Timeout.Milliseconds }} * time.Millisecond,
	}
}
`

const modelsTemplate = `// internal/workers/{{ .Dir }}/models.go
package {{ .Package }}

type Input struct {
{{- range .Fields }}
	{{ .Name }} {{ .GoType }} ` + "`" + `json:"{{ .JSONName }}{{ if not .Required }},omitempty{{ end }}"` + "`" + `
{{- end }}
}

type Output struct {
}
`

const handlerTemplate = `// internal/workers/{{ .Dir }}/handler.go
package {{ .Package }}

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/logger"
)

const (
	TaskType = "{{ .TaskType }}"
)

{{ if .Description }}// Handler serves {{ .TaskType }} jobs. {{ .Description }}
{{ end -}}
type Handler struct {
	config *Config
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		errors: errors.NewErrorHandler(log),
		logger: log,
	}
}

func (h *Handler) Handle(ctx context.Context, client worker.JobClient, job entities.Job) error {
	return camunda.Process(ctx, camunda.Job{
		Client:  client,
		Job:     job,
		Timeout: h.config.Timeout,
		Errors:  h.errors,
		Logger:  h.logger,
	}, h.execute)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
{{- range .Fields }}{{ if and .Required (eq .GoType "string") }}
	if input.{{ .Name }} == "" {
		return nil, errors.NewInvalidInputError("{{ .JSONName }} is required", nil)
	}
{{- end }}{{ end }}
	return &Output{}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
`

const testTemplate = `// internal/workers/{{ .Dir }}/handler_test.go
package {{ .Package }}

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"loan-marketplace-workers/internal/common/logger"
)

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
{{- range .Fields }}{{ if and .Required (eq .GoType "string") }}
		{{ .Name }}: "test",
{{- end }}{{ end }}
	})
	require.NoError(t, err)
	require.NotNil(t, out)
}
`
