package jobs

import (
	"context"

	"github.com/stonjarli/backend/internal/strategy"
	"github.com/stonjarli/backend/pkg/logger"
)

// ExitSweepJob applies the holding-period exit rules to open positions.
type ExitSweepJob struct {
	schedule string
	engine   *strategy.ExitEngine
	logger   *logger.Logger
}

// NewExitSweepJob creates the scheduled exit sweep.
func NewExitSweepJob(schedule string, engine *strategy.ExitEngine, log *logger.Logger) *ExitSweepJob {
	return &ExitSweepJob{
		schedule: schedule,
		engine:   engine,
		logger:   log,
	}
}

// Name returns the job name
func (j *ExitSweepJob) Name() string {
	return "exit-sweep"
}

// Schedule returns the cron expression
func (j *ExitSweepJob) Schedule() string {
	return j.schedule
}

// Run evaluates every open position against the exit rules.
func (j *ExitSweepJob) Run(ctx context.Context) error {
	verdicts, err := j.engine.Run(ctx)
	if err != nil {
		return err
	}

	actions := make(map[strategy.ExitAction]int)
	for _, v := range verdicts {
		actions[v.Action]++
	}

	j.logger.WithFields(map[string]interface{}{
		"positions": len(verdicts),
		"held":      actions[strategy.ExitHold],
		"trailed":   actions[strategy.ExitTrail],
		"sold":      actions[strategy.ExitSell],
	}).Info("Exit sweep completed")

	return nil
}
