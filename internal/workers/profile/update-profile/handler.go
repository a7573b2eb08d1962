// internal/workers/profile/update-profile/handler.go
package updateprofile

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/events"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/common/validation"
	"loan-marketplace-workers/internal/eligibility"
	"loan-marketplace-workers/internal/store"
)

const (
	TaskType = "update-profile"
)

type Handler struct {
	config    *Config
	profiles  *store.Profiles
	publisher events.Publisher
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, publisher events.Publisher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		profiles:  store.NewProfiles(db, rdb, config.ProfileTTL),
		publisher: publisher,
		errors:    errors.NewErrorHandler(log),
		logger:    log,
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
	if input.IsEmpty() {
		return nil, errors.NewInvalidInputError("update sets no fields", nil)
	}
	if err := input.Validate(); err != nil {
		result := validation.FromRules(err)
		return nil, errors.NewInvalidInputError(result.Summary(), err).
			WithMetadata("validationErrors", result.Errors)
	}

	// read past the cache so the update starts from the stored row
	current, err := h.profiles.GetProfile(ctx, input.ProfileID)
	if stderrors.Is(err, store.ErrNotFound) {
		return nil, errors.NewProfileNotFoundError(input.ProfileID)
	}
	if err != nil {
		return nil, store.QueryError("get_profile", err)
	}

	next := input.Apply(current)
	if err := eligibility.ValidateProfile(next); err != nil {
		return nil, errors.NewProfileValidationFailedError(err.Error(), err)
	}

	updated, err := h.profiles.UpdateProfile(ctx, next)
	if stderrors.Is(err, store.ErrNotFound) {
		return nil, errors.NewProfileNotFoundError(input.ProfileID)
	}
	if err != nil {
		return nil, store.QueryError("update_profile", err)
	}

	if err := h.profiles.Invalidate(ctx, input.ProfileID); err != nil {
		h.logger.Warn("failed to invalidate cached profile", map[string]interface{}{
			"profileId": input.ProfileID,
			"error":     err,
		})
	}

	fields := changedFields(input.ProfileUpdate)
	events.Emit(ctx, h.publisher, h.logger, events.New(events.ProfileUpdated, input.ProfileID, map[string]interface{}{
		"changedFields": fields,
	}))

	h.logger.Info("profile updated", map[string]interface{}{
		"profileId":     input.ProfileID,
		"changedFields": fields,
	})
	return &Output{Profile: updated, ChangedFields: fields}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
