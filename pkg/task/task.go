// pkg/task/task.go
package task

import (
	"context"

	"github.com/David-Botos/record-migrate/pkg/cache"
	"github.com/David-Botos/record-migrate/pkg/model"
)

// Task is one per-object migration unit. The job orchestrator drives
// tasks strictly in registration order and never concurrently; a task's
// validate/repair steps report expected data problems as issues, while
// I/O failures are returned as errors and abort the whole run.
type Task interface {
	// ObjectName identifies the migrated object
	ObjectName() string

	// CSVPath is the task's working CSV file
	CSVPath() string

	// BackupPath is where the working file is archived before repair
	BackupPath() string

	// ValidateCSV checks the working file for structural defects
	ValidateCSV() ([]model.Issue, error)

	// RepairCSV repairs record content through the shared store: value
	// translation, identifier synthesis, and cross-object lookup
	// resolution. It marks its file dirty in the store whenever it
	// mutates a row.
	RepairCSV(store *cache.Store) ([]model.Issue, error)

	// Count reports how many records already exist in the target store
	Count(ctx context.Context) error

	// DeleteOldTargetRecords removes previously migrated records from
	// the target store, reporting whether anything was deleted
	DeleteOldTargetRecords(ctx context.Context) (bool, error)

	// QueryRecords fetches the object's records from the source store
	// into the working CSV
	QueryRecords(ctx context.Context) error
}
