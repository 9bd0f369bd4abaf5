package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fixly/config"
	"fixly/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitEscalationWorker runs the async review-queue worker in background.
func InitEscalationWorker(logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEscalationReview, handleEscalationTask(logger))

	go func() {
		log.Println("[EscalationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[EscalationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[EscalationWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleEscalationTask records the review-queue entry. Working the queue is
// an admin activity served by the review-queue endpoint; the worker's job is
// to surface the crossing when it happens.
func handleEscalationTask(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.EscalationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid escalation payload", zap.Error(err))
			return err
		}

		logger.Warn("account flagged for administrative review",
			zap.String("accountId", p.AccountID),
			zap.String("displayName", p.DisplayName),
			zap.Int("cancellationCount", p.Count),
		)
		return nil
	}
}
