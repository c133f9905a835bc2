package jobs

import (
	"context"

	"github.com/stonjarli/backend/internal/strategy"
	"github.com/stonjarli/backend/pkg/logger"
)

// StrategyRunJob executes one strategy variant on its schedule.
type StrategyRunJob struct {
	name     string
	schedule string
	orch     *strategy.Orchestrator
	logger   *logger.Logger
}

// NewStrategyRunJob creates a scheduled run for one strategy.
func NewStrategyRunJob(name, schedule string, orch *strategy.Orchestrator, log *logger.Logger) *StrategyRunJob {
	return &StrategyRunJob{
		name:     name,
		schedule: schedule,
		orch:     orch,
		logger:   log,
	}
}

// Name returns the job name
func (j *StrategyRunJob) Name() string {
	return j.name
}

// Schedule returns the cron expression
func (j *StrategyRunJob) Schedule() string {
	return j.schedule
}

// Run executes the strategy. A run that placed no orders is still a
// success; the summary explains where the pipeline emptied.
func (j *StrategyRunJob) Run(ctx context.Context) error {
	summary, err := j.orch.Run(ctx)
	if err != nil {
		return err
	}

	if summary.ZeroOrders() {
		j.logger.WithFields(map[string]interface{}{
			"job":        j.name,
			"emptied_at": summary.EmptiedAt.String(),
			"attempted":  summary.Attempted,
		}).Info("Strategy run placed no orders")
	}

	return nil
}
