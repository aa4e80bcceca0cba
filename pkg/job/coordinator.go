// pkg/job/coordinator.go
package job

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/David-Botos/record-migrate/pkg/model"
)

// Coordinator drives the two-pass validate/repair protocol over the
// job's task list and applies the single-prompt escalation policy.
//
// Pass 1 validates every task's CSV structure; pass 2 repairs record
// content through the shared cache. All tasks complete pass 1 before
// any task begins pass 2, so the whole-job abort decision is made
// before any row is mutated.
type Coordinator struct {
	job      *Job
	gate     *PromptGate
	reporter *Reporter
	logger   *zap.Logger
}

// NewCoordinator wires the coordinator to a job, its gate, and its
// reporter
func NewCoordinator(job *Job, gate *PromptGate, reporter *Reporter, logger *zap.Logger) (*Coordinator, error) {
	if job == nil {
		return nil, errors.New("job cannot be nil")
	}
	if gate == nil {
		return nil, errors.New("prompt gate cannot be nil")
	}
	if reporter == nil {
		return nil, errors.New("reporter cannot be nil")
	}

	return &Coordinator{
		job:      job,
		gate:     gate,
		reporter: reporter,
		logger:   logger,
	}, nil
}

// Run executes both passes and the escalation policy. It returns
// ErrAborted if the operator stopped the run; any other error is a
// fatal I/O failure.
func (c *Coordinator) Run() error {
	// Pass 1 — structural validation, in task registration order
	for _, t := range c.job.Tasks {
		issues, err := t.ValidateCSV()
		if err != nil {
			return fmt.Errorf("validation failed for %s: %w", t.ObjectName(), err)
		}
		c.job.AddIssues(issues...)
	}

	c.logger.Info("Validation pass complete",
		zap.Int("tasks", len(c.job.Tasks)),
		zap.Int("issues", len(c.job.Issues)))

	if len(c.job.Issues) > 0 {
		c.job.Prompted = true
		if err := c.gate.PromptOrReport(len(c.job.Issues), model.IssueReportFile, c.writeReport); err != nil {
			return err
		}
	}

	// Pass 2 — content repair through the shared store, same order
	for _, t := range c.job.Tasks {
		issues, err := t.RepairCSV(c.job.Cache)
		if err != nil {
			return fmt.Errorf("repair failed for %s: %w", t.ObjectName(), err)
		}
		c.job.AddIssues(issues...)
	}

	if err := c.reporter.FlushDirty(c.job.Cache); err != nil {
		return err
	}

	// Escalation: the gate fires at most once per run. Issues found
	// after it has fired go straight to report-and-continue.
	switch {
	case len(c.job.Issues) > 0 && c.job.Prompted:
		if err := c.writeReport(); err != nil {
			return err
		}
		c.logger.Warn("Issues remain after repair",
			zap.Int("issues", len(c.job.Issues)),
			zap.String("report", model.IssueReportFile))
	case len(c.job.Issues) > 0:
		c.job.Prompted = true
		if err := c.gate.PromptOrReport(len(c.job.Issues), model.IssueReportFile, c.writeReport); err != nil {
			return err
		}
	default:
		c.logger.Info("No issues found")
	}

	return nil
}

func (c *Coordinator) writeReport() error {
	return c.reporter.WriteIssueReport(model.IssueReportFile, c.job.Issues)
}
