// pkg/job/job.go
package job

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/David-Botos/record-migrate/pkg/cache"
	"github.com/David-Botos/record-migrate/pkg/mapping"
	"github.com/David-Botos/record-migrate/pkg/model"
	"github.com/David-Botos/record-migrate/pkg/task"
)

// Job carries the per-run aggregation state shared by every phase: the
// ordered task list, the value translation table, the append-only issue
// list, and the shared CSV content store. It is created once per run
// and passed explicitly to every collaborator; nothing here is global.
type Job struct {
	ID      string
	BaseDir string
	Tasks   []task.Task
	Values  mapping.ValueMap
	Cache   *cache.Store
	Issues  []model.Issue

	// Prompted is set the first time the abort/continue gate fires;
	// later issue discoveries in the same run bypass the prompt and go
	// straight to report-and-continue.
	Prompted bool

	logger *zap.Logger
}

// NewJob creates a job run over an ordered task list
func NewJob(baseDir string, tasks []task.Task, values mapping.ValueMap, logger *zap.Logger) *Job {
	if values == nil {
		values = mapping.New()
	}
	return &Job{
		ID:      uuid.New().String(),
		BaseDir: baseDir,
		Tasks:   tasks,
		Values:  values,
		Cache:   cache.NewStore(),
		Issues:  make([]model.Issue, 0),
		logger:  logger,
	}
}

// AddIssues appends issues in discovery order. Issues are never
// deduplicated or reclassified.
func (j *Job) AddIssues(issues ...model.Issue) {
	j.Issues = append(j.Issues, issues...)
}
