// pkg/job/run.go
package job

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/David-Botos/record-migrate/pkg/archive"
	"github.com/David-Botos/record-migrate/pkg/config"
	"github.com/David-Botos/record-migrate/pkg/csvio"
	"github.com/David-Botos/record-migrate/pkg/model"
)

// Runner executes a complete migration run: value mapping load, export
// merge, source archiving, the two-pass validate/repair protocol, and
// the count/delete/query phases.
type Runner struct {
	job         *Job
	jobFile     *config.JobFile
	coordinator *Coordinator
	phases      *PhaseRunner
	logger      *zap.Logger
}

// NewRunner wires a runner for one job run
func NewRunner(cfg *config.Config, jf *config.JobFile, j *Job, logger *zap.Logger) (*Runner, error) {
	gate := NewPromptGate(cfg.AutoContinue, logger)
	reporter := NewReporter(j.BaseDir, logger)

	coordinator, err := NewCoordinator(j, gate, reporter, logger)
	if err != nil {
		return nil, err
	}

	return &Runner{
		job:         j,
		jobFile:     jf,
		coordinator: coordinator,
		phases:      NewPhaseRunner(j, logger),
		logger:      logger,
	}, nil
}

// Run drives the whole pipeline. It returns ErrAborted when the
// operator stopped the run at the gate; any other error is fatal and
// means the run ended early.
func (r *Runner) Run(ctx context.Context) error {
	summary := NewRunSummary()
	r.logger.Info("Starting migration run",
		zap.String("jobID", r.job.ID),
		zap.Int("tasks", len(r.job.Tasks)))

	err := summary.TrackPhase("prepare", func() error {
		// Load value translation rules; a missing file is a no-op
		if err := r.job.Values.Load(filepath.Join(r.job.BaseDir, model.ValueMappingFile)); err != nil {
			return err
		}

		// Fold the two related export files into one target-entity file
		if m := r.jobFile.Merge; m != nil {
			if err := csvio.MergeTwo(
				filepath.Join(r.job.BaseDir, m.FileA),
				filepath.Join(r.job.BaseDir, m.FileB),
				filepath.Join(r.job.BaseDir, m.Output),
				m.Dedupe, m.Key1, m.Key2,
			); err != nil {
				return err
			}
			r.logger.Info("Merged related exports",
				zap.String("fileA", m.FileA),
				zap.String("fileB", m.FileB),
				zap.String("output", m.Output))
		}

		// Snapshot originals before repair mutates anything
		sources := make([]archive.Source, len(r.job.Tasks))
		for i, t := range r.job.Tasks {
			sources[i] = t
		}
		return archive.ArchiveAll(r.logger, sources)
	})
	if err != nil {
		return err
	}

	// Two-pass validate/repair with the single-prompt escalation
	err = summary.TrackPhase("repair", func() error {
		return r.coordinator.Run()
	})
	for _, issue := range r.job.Issues {
		summary.AddObjectIssues(issue.ChildObject, 1)
	}
	if err != nil {
		return err
	}
	summary.SetFlushedFiles(len(r.job.Cache.DirtyPaths()))

	// Later phases, independent of each other's outcomes
	if err := summary.TrackPhase("count", func() error {
		return r.phases.CountAll(ctx)
	}); err != nil {
		return err
	}

	if err := summary.TrackPhase("delete", func() error {
		deleted, err := r.phases.DeleteOldRecords(ctx)
		if err != nil {
			return err
		}
		summary.SetDeletedOld(deleted)
		if deleted {
			r.logger.Info("Old target records were deleted")
		}
		return nil
	}); err != nil {
		return err
	}

	if err := summary.TrackPhase("query", func() error {
		return r.phases.QueryAll(ctx)
	}); err != nil {
		return err
	}

	summary.Finish()
	summary.Log(r.logger.With(zap.String("jobID", r.job.ID)))
	return nil
}
