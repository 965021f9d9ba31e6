package jobs

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OutboxRelayJob drains the transactional outbox to the message broker.
// Runs every second so customer notifications leave shortly after the
// commit that queued them.
type OutboxRelayJob struct {
	handler   commands.RelayOutboxCommandHandler
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewOutboxRelayJob creates a job relaying up to batchSize messages per pass.
func NewOutboxRelayJob(
	handler commands.RelayOutboxCommandHandler,
	batchSize int,
	logger *zap.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With(zap.String("component", "outbox_relay_job")),
	}
}

// Start begins the relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
		if err != nil {
			j.logger.Error("outbox relay pass failed", zap.Error(err))
			return
		}

		published, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.Error("outbox relay pass failed", zap.Error(err))
			metrics.OperationErrorsTotal.WithLabelValues("outbox_relay").Inc()
			return
		}

		if published > 0 {
			metrics.OutboxMessagesPublishedTotal.Add(float64(published))
			j.logger.Debug("outbox messages relayed", zap.Int("published", published))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("outbox relay job started (running every second)")
	return nil
}

// Stop stops the relay job.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.Info("outbox relay job stopped")
}
