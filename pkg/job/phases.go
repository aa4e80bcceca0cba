// pkg/job/phases.go
package job

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// PhaseRunner drives the count, delete, and query phases. Each phase is
// a strictly ordered, sequential loop over the task list; the phases
// share no state with the validate/repair cache and are independent of
// each other's outcomes.
type PhaseRunner struct {
	job    *Job
	logger *zap.Logger
}

// NewPhaseRunner creates a phase runner over a job's task list
func NewPhaseRunner(job *Job, logger *zap.Logger) *PhaseRunner {
	return &PhaseRunner{
		job:    job,
		logger: logger,
	}
}

// CountAll invokes each task's count step in registration order. Each
// task reports its own result; no job-level aggregate is produced.
func (r *PhaseRunner) CountAll(ctx context.Context) error {
	for _, t := range r.job.Tasks {
		if err := t.Count(ctx); err != nil {
			return fmt.Errorf("count phase failed for %s: %w", t.ObjectName(), err)
		}
	}

	r.logger.Info("Count phase complete", zap.Int("tasks", len(r.job.Tasks)))
	return nil
}

// DeleteOldRecords invokes each task's delete step in registration
// order and reports whether any task deleted something. Every task is
// invoked regardless of earlier results; there is no short-circuit on
// the first deletion.
func (r *PhaseRunner) DeleteOldRecords(ctx context.Context) (bool, error) {
	deleted := false
	for _, t := range r.job.Tasks {
		taskDeleted, err := t.DeleteOldTargetRecords(ctx)
		if err != nil {
			return deleted, fmt.Errorf("delete phase failed for %s: %w", t.ObjectName(), err)
		}
		deleted = taskDeleted || deleted
	}

	r.logger.Info("Delete phase complete",
		zap.Int("tasks", len(r.job.Tasks)),
		zap.Bool("deleted", deleted))
	return deleted, nil
}

// QueryAll invokes each task's fetch step in registration order
func (r *PhaseRunner) QueryAll(ctx context.Context) error {
	for _, t := range r.job.Tasks {
		if err := t.QueryRecords(ctx); err != nil {
			return fmt.Errorf("query phase failed for %s: %w", t.ObjectName(), err)
		}
	}

	r.logger.Info("Query phase complete", zap.Int("tasks", len(r.job.Tasks)))
	return nil
}
