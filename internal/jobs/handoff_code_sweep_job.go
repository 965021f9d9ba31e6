package jobs

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// HandoffCodeSweepJob clears handoff codes whose delivery window has
// lapsed. Runs once a minute, which is tight enough for windows measured
// in hours.
type HandoffCodeSweepJob struct {
	handler commands.SweepExpiredCodesCommandHandler
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewHandoffCodeSweepJob creates a job sweeping expired handoff codes.
func NewHandoffCodeSweepJob(
	handler commands.SweepExpiredCodesCommandHandler,
	logger *zap.Logger,
) *HandoffCodeSweepJob {
	return &HandoffCodeSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With(zap.String("component", "handoff_code_sweep_job")),
	}
}

// Start begins the sweep job to run every minute.
func (j *HandoffCodeSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSweepExpiredCodesCommand()

		swept, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.Error("handoff code sweep failed", zap.Error(err))
			metrics.OperationErrorsTotal.WithLabelValues("code_sweep").Inc()
			return
		}

		if swept > 0 {
			metrics.ExpiredCodesSweptTotal.Add(float64(swept))
			j.logger.Info("expired handoff codes cleared", zap.Int("swept", swept))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("handoff code sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *HandoffCodeSweepJob) Stop() {
	j.cron.Stop()
	j.logger.Info("handoff code sweep job stopped")
}
