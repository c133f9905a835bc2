package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stonjarli/backend/internal/scheduler"
	"github.com/stonjarli/backend/internal/scheduler/jobs"
)

var exitSweepSchedule string

// schedulerCmd runs the strategies and the exit sweep on their cron
// schedules until interrupted.
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run scheduled strategy and exit-sweep jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		d, err := newDeps()
		if err != nil {
			return err
		}
		defer d.close()

		if err := d.requireStrategies(ctx); err != nil {
			return err
		}

		sched := scheduler.New(d.log)

		for id, orch := range d.strategies {
			schedule := orch.Schedule()
			if schedule == "" {
				d.log.WithField("strategy", id).Info("Strategy has no schedule, on-demand only")
				continue
			}
			if err := sched.AddJob(jobs.NewStrategyRunJob(id, schedule, orch, d.log)); err != nil {
				return err
			}
		}

		if err := sched.AddJob(jobs.NewExitSweepJob(exitSweepSchedule, d.exitEngine, d.log)); err != nil {
			return err
		}

		sched.Start()
		defer sched.Stop()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		return nil
	},
}

func init() {
	// Default sweep: weekdays shortly before the close
	schedulerCmd.Flags().StringVar(&exitSweepSchedule, "exit-sweep-schedule", "0 45 15 * * 1-5", "cron schedule for the exit sweep")
	rootCmd.AddCommand(schedulerCmd)
}
