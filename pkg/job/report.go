// pkg/job/report.go
package job

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/David-Botos/record-migrate/pkg/cache"
	"github.com/David-Botos/record-migrate/pkg/csvio"
	"github.com/David-Botos/record-migrate/pkg/model"
)

// Reporter writes issue/report CSVs under the job's base directory and
// flushes dirty cache entries back to disk.
type Reporter struct {
	baseDir string
	logger  *zap.Logger
}

// NewReporter creates a reporter rooted at the job's base directory
func NewReporter(baseDir string, logger *zap.Logger) *Reporter {
	return &Reporter{
		baseDir: baseDir,
		logger:  logger,
	}
}

// SaveCSV writes rows to a named file under the base directory. The
// header row is always written, even for an empty row sequence.
func (r *Reporter) SaveCSV(fileName string, columns []string, rows []*model.Row) error {
	path := filepath.Join(r.baseDir, fileName)
	if err := csvio.WriteFile(path, columns, rows); err != nil {
		return fmt.Errorf("failed to save %s: %w", fileName, err)
	}

	r.logger.Debug("Saved CSV file",
		zap.String("file", fileName),
		zap.Int("rows", len(rows)))
	return nil
}

// WriteIssueReport writes the full issue list to the named report file
func (r *Reporter) WriteIssueReport(fileName string, issues []model.Issue) error {
	rows := make([]*model.Row, len(issues))
	for i, issue := range issues {
		rows[i] = issue.Row()
	}

	if err := r.SaveCSV(fileName, model.IssueColumns, rows); err != nil {
		return err
	}

	r.logger.Info("Wrote issue report",
		zap.String("file", fileName),
		zap.Int("issues", len(issues)))
	return nil
}

// FlushDirty overwrites every file marked dirty in the store with the
// current in-memory rows, in their table's insertion order. Files never
// touched in memory are left untouched on disk. Dirty markers and cache
// contents are not cleared here; that takes an explicit store clear.
func (r *Reporter) FlushDirty(store *cache.Store) error {
	for _, path := range store.DirtyPaths() {
		table := store.Table(path)
		rows := table.Rows()
		if len(rows) == 0 {
			r.logger.Warn("Skipping flush of empty dirty table", zap.String("path", path))
			continue
		}

		if err := csvio.WriteFile(path, rows[0].Columns(), rows); err != nil {
			return fmt.Errorf("failed to flush %s: %w", path, err)
		}

		r.logger.Info("Flushed repaired file",
			zap.String("path", path),
			zap.Int("rows", len(rows)))
	}
	return nil
}
