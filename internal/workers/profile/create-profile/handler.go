// internal/workers/profile/create-profile/handler.go
package createprofile

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/common/validation"
	"loan-marketplace-workers/internal/eligibility"
	"loan-marketplace-workers/internal/store"
)

const (
	TaskType = "create-profile"
)

type Handler struct {
	config   *Config
	profiles *store.ProfileRepository
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		profiles: store.NewProfileRepository(db),
		errors:   errors.NewErrorHandler(log),
		logger:   log,
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
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	existing, err := h.profiles.GetProfileByAuthID(ctx, input.AuthID)
	if err == nil {
		h.logger.Info("profile already exists", map[string]interface{}{
			"profileId": existing.ProfileID,
		})
		return &Output{Profile: existing, Created: false}, nil
	}
	if !stderrors.Is(err, store.ErrNotFound) {
		return nil, store.QueryError("get_profile_by_auth", err)
	}

	profile := input.profile()
	if err := eligibility.ValidateProfile(profile); err != nil {
		return nil, errors.NewProfileValidationFailedError(err.Error(), err)
	}

	created, err := h.profiles.CreateProfile(ctx, profile)
	if stderrors.Is(err, store.ErrDuplicate) {
		return nil, errors.NewDatabaseInsertFailedError(err)
	}
	if err != nil {
		return nil, store.QueryError("create_profile", err)
	}

	h.logger.Info("profile created", map[string]interface{}{"profileId": created.ProfileID})
	return &Output{Profile: created, Created: true}, nil
}

// invalidInput reports field errors under validationErrors.
func invalidInput(err error) *errors.StandardError {
	result := validation.FromRules(err)
	return errors.NewInvalidInputError(result.Summary(), err).
		WithMetadata("validationErrors", result.Errors)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
