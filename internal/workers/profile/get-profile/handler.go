// internal/workers/profile/get-profile/handler.go
package getprofile

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/models"
	"loan-marketplace-workers/internal/store"
)

const (
	TaskType = "get-profile"
)

type Handler struct {
	config   *Config
	profiles *store.Profiles
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		profiles: store.NewProfiles(db, rdb, config.ProfileTTL),
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
	var (
		profile models.UserProfile
		err     error
		key     string
	)
	switch {
	case input.ProfileID != "":
		key = input.ProfileID
		profile, err = h.profiles.Get(ctx, input.ProfileID)
	case input.AuthID != "":
		key = input.AuthID
		profile, err = h.profiles.GetProfileByAuthID(ctx, input.AuthID)
	default:
		return nil, errors.NewInvalidInputError("profileId or authId is required", nil)
	}

	if stderrors.Is(err, store.ErrNotFound) {
		return nil, errors.NewProfileNotFoundError(key)
	}
	if err != nil {
		return nil, store.QueryError("get_profile", err)
	}
	return &Output{Profile: profile}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
