// internal/common/camunda/job.go
package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/logger"
)

// CompleteJob completes job with output as its variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("build complete command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("send complete command: %w", err)
	}
	return nil
}

// Job bundles what a handler needs to process one job.
type Job struct {
	Client  worker.JobClient
	Job     entities.Job
	Timeout time.Duration
	Errors  *errors.ErrorHandler
	Logger  logger.Logger
}

// Process decodes the job variables into I, runs execute within the
// timeout and reports completion or failure to the broker.
func Process[I any, O any](ctx context.Context, j Job, execute func(context.Context, *I) (*O, error)) error {
	j.Logger.Info("processing job", map[string]interface{}{
		"jobKey":             j.Job.Key,
		"processInstanceKey": j.Job.ProcessInstanceKey,
	})

	var input I
	if err := json.Unmarshal([]byte(j.Job.Variables), &input); err != nil {
		return j.Errors.HandleJobError(ctx, j.Client, j.Job, errors.NewParseError(err))
	}

	execCtx, cancel := context.WithTimeout(ctx, j.Timeout)
	output, err := execute(execCtx, &input)
	cancel()
	if err != nil {
		return j.Errors.HandleJobError(ctx, j.Client, j.Job, err)
	}

	if err := CompleteJob(ctx, j.Client, j.Job, output); err != nil {
		j.Logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": j.Job.Key,
			"error":  err,
		})
		return err
	}
	j.Logger.Info("job completed successfully", map[string]interface{}{"jobKey": j.Job.Key})
	return nil
}
