// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
package job

import (
	"context"

	"github.com/deppfellow/invoice-dashboard/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// enqueuer is the producer side of asynq.Client.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	client enqueuer
	server *asynq.Server
	logger *zerolog.Logger

	// Set by InitHandlers before Start.
	emails    invoiceMailer
	customers customerLookup
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the largest worker share.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	return &JobService{
		client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the worker server in the
// background.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskInvoiceSaved, j.handleInvoiceSavedTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop waits for running tasks, then closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	if j.server != nil {
		j.server.Shutdown()
	}
	if err := j.client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}
