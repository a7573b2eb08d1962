// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"loan-marketplace-workers/internal/common/aws"
	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/config"
	"loan-marketplace-workers/internal/common/database"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/events"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/common/observability"
	"loan-marketplace-workers/internal/common/validation"
	"loan-marketplace-workers/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.New(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cfg.Logging.Output,
		Service: cfg.App.Name,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync() //nolint:errcheck

	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("Starting worker manager...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs, err := observability.New(cfg.App.Name, cfg.App.Version)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(camunda.ConfigFrom(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Redis ---
	rdb := database.NewRedis(cfg.Database.Redis)
	err = retryWithBackoff(func() error {
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Elasticsearch (optional) ---
	var es *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled() {
		err = retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return es.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	} else {
		zapLog.Info("Elasticsearch not configured, loan search disabled")
	}

	// --- Registry and input schemas ---
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.String("path", cfg.Registry.Path), zap.Error(err))
	}
	validator, err := validation.NewValidator(reg)
	if err != nil {
		zapLog.Fatal("input schema compile failed", zap.Error(err))
	}

	// --- Events ---
	redisEvents := events.NewRedisPublisher(rdb.Client, cfg.Events.Channel)
	publishers := events.Multi{redisEvents}
	if cfg.Events.PublishToZeebe {
		publishers = append(publishers, events.NewZeebePublisher(zeebe, config.GetDuration(cfg.Events.MessageTTL)))
	}
	go func() {
		err := redisEvents.Subscribe(ctx, func(ev events.Event) {
			log.Debug("event published", map[string]interface{}{
				"type":      ev.Type,
				"profileId": ev.ProfileID,
				"loanId":    ev.LoanID,
			})
		})
		if err != nil && ctx.Err() == nil {
			log.WithError(err).Warn("event subscription ended", nil)
		}
	}()

	// --- Notification channels ---
	var mailer *aws.Mailer
	var texter *aws.Texter
	if cfg.Notifications.Email.Enabled {
		mailer, err = aws.NewSESMailer(ctx, cfg.Notifications.AWS.Region, cfg.Notifications.Email.FromEmail)
		if err != nil {
			zapLog.Fatal("SES client init failed", zap.Error(err))
		}
	}
	if cfg.Notifications.SMS.Enabled {
		texter, err = aws.NewSNSTexter(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("SNS client init failed", zap.Error(err))
		}
	}

	deps := &dependencies{
		cfg:       cfg,
		db:        pg.DB,
		redis:     rdb.Client,
		publisher: publishers,
		mailer:    mailer,
		texter:    texter,
		log:       log,
	}
	if es != nil {
		deps.search = es.Client
	}

	in := camunda.Instrumentation{
		Obs:       obs,
		Validator: validator,
		Errors:    errors.NewErrorHandler(log),
		Logger:    log,
	}
	workers := startWorkers(zeebe.GetClient(), deps, in)
	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	srv := newHealthServer(cfg.Server.Address, &readiness{pg: pg, redis: rdb, zeebe: zeebe})
	go serve(srv, zapLog)

	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing telemetry", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
