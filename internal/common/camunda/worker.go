// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"loan-marketplace-workers/internal/common/config"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/common/metrics"
	"loan-marketplace-workers/internal/common/observability"
	"loan-marketplace-workers/internal/common/validation"
)

// JobHandler processes one job and reports its outcome to the broker.
// The returned error only feeds metrics and tracing.
type JobHandler interface {
	Handle(ctx context.Context, client worker.JobClient, job entities.Job) error
}

// Instrumentation is shared by every worker of the process.
type Instrumentation struct {
	Obs       *observability.Observability
	Validator *validation.Validator
	Errors    *errors.ErrorHandler
	Logger    logger.Logger
}

// Wrap adapts handler to the Zeebe callback. Job variables are checked
// against the task's registered input schema before handler runs.
func Wrap(taskType string, handler JobHandler, in Instrumentation) worker.JobHandler {
	schema := in.Validator.ForTask(taskType)
	obs := in.Obs
	if obs == nil {
		obs = observability.Noop()
	}

	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		defer active.Dec()

		ctx, span := obs.StartSpan(context.Background(), taskType, job.Key)

		var err error
		if schema != nil {
			err = checkInput(schema, job)
			if err != nil {
				in.Errors.HandleJobError(ctx, client, job, err)
			}
		}
		if err == nil {
			err = handler.Handle(ctx, client, job)
		}

		status := "completed"
		if err != nil {
			status = "failed"
			code := errors.Normalize(err).Code
			metrics.WorkerJobsFailed.WithLabelValues(taskType, string(code)).Inc()
		} else {
			metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		}
		elapsed := time.Since(start)
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
		obs.RecordJob(ctx, taskType, status, elapsed)
		observability.EndSpan(span, err)
	}
}

func checkInput(schema *validation.Schema, job entities.Job) error {
	result, err := schema.Validate(job.Variables)
	if err != nil {
		return errors.NewParseError(err)
	}
	if !result.Valid {
		return errors.NewInvalidInputError(result.Summary(), nil).
			WithMetadata("validationErrors", result.Errors)
	}
	return nil
}

// CamundaWorker is one open job worker subscription.
type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

func NewWorker(
	client zbc.Client,
	taskType string,
	cfg config.WorkerConfig,
	handler JobHandler,
	in Instrumentation,
) *CamundaWorker {
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(Wrap(taskType, handler, in)).
		MaxJobsActive(cfg.MaxJobsActive).
		Timeout(config.GetDuration(cfg.Timeout)).
		Name("loan-marketplace-" + taskType).
		Open()

	log := in.Logger.WithFields(map[string]interface{}{"taskType": taskType})
	log.Info("worker started", map[string]interface{}{"maxJobsActive": cfg.MaxJobsActive})

	return &CamundaWorker{worker: jobWorker, logger: log, taskType: taskType}
}

// Stop closes the subscription and waits for in-flight jobs.
func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}
