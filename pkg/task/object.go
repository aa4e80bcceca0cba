// pkg/task/object.go
package task

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/David-Botos/record-migrate/pkg/cache"
	"github.com/David-Botos/record-migrate/pkg/config"
	"github.com/David-Botos/record-migrate/pkg/connector"
	"github.com/David-Botos/record-migrate/pkg/csvio"
	"github.com/David-Botos/record-migrate/pkg/mapping"
	"github.com/David-Botos/record-migrate/pkg/model"
)

// ObjectTask migrates one object between the source and target stores
// through its working CSV file.
type ObjectTask struct {
	spec    config.ObjectSpec
	baseDir string
	values  mapping.ValueMap
	source  *connector.SnowflakeConnector
	target  *connector.PostgresConnector
	logger  *zap.Logger
}

// NewObjectTask creates a task for one migrated object
func NewObjectTask(
	spec config.ObjectSpec,
	baseDir string,
	values mapping.ValueMap,
	source *connector.SnowflakeConnector,
	target *connector.PostgresConnector,
	logger *zap.Logger,
) (*ObjectTask, error) {
	if spec.Name == "" {
		return nil, errors.New("object name cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &ObjectTask{
		spec:    spec,
		baseDir: baseDir,
		values:  values,
		source:  source,
		target:  target,
		logger:  logger.Named("task").With(zap.String("object", spec.Name)),
	}, nil
}

// ObjectName identifies the migrated object
func (t *ObjectTask) ObjectName() string {
	return t.spec.Name
}

// CSVPath is the task's working CSV file
func (t *ObjectTask) CSVPath() string {
	return filepath.Join(t.baseDir, t.spec.File)
}

// BackupPath is where the working file is archived before repair
func (t *ObjectTask) BackupPath() string {
	return filepath.Join(t.baseDir, t.spec.Backup)
}

// ValidateCSV checks the working file's structure: every required
// column must be present in the header, and no row may leave a required
// column empty. Problems are reported as issues; a missing or unreadable
// file is fatal.
func (t *ObjectTask) ValidateCSV() ([]model.Issue, error) {
	header, err := csvio.ReadHeader(t.CSVPath())
	if err != nil {
		return nil, fmt.Errorf("validation of %s failed: %w", t.spec.Name, err)
	}

	var issues []model.Issue

	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}

	missing := make(map[string]bool)
	for _, col := range t.spec.Required {
		if !present[col] {
			missing[col] = true
			issues = append(issues, model.NewIssue(
				"", t.spec.Name, col,
				fmt.Sprintf("required column %s is missing", col)))
		}
	}

	rows, err := csvio.ReadFile(t.CSVPath())
	if err != nil {
		return nil, fmt.Errorf("validation of %s failed: %w", t.spec.Name, err)
	}

	for i, row := range rows {
		for _, col := range t.spec.Required {
			if missing[col] {
				continue
			}
			if strings.TrimSpace(row.Get(col)) == "" {
				issues = append(issues, model.NewIssue(
					row.Get(t.spec.KeyField), t.spec.Name, col,
					fmt.Sprintf("row %d has no value for required column %s", i+1, col)))
			}
		}
	}

	t.logger.Debug("Validated CSV structure",
		zap.Int("rows", len(rows)),
		zap.Int("issues", len(issues)))

	return issues, nil
}

// RepairCSV repairs the working file's content through the shared
// store: it synthesizes identifiers for rows lacking one, translates
// field values through the value mapping, and rewrites cross-object
// lookup values to the parent row's identifier. Every mutation marks
// the file dirty; unresolvable content is reported as issues.
func (t *ObjectTask) RepairCSV(store *cache.Store) ([]model.Issue, error) {
	table, err := ensureCached(store, t.CSVPath(), t.spec.KeyField)
	if err != nil {
		return nil, fmt.Errorf("repair of %s failed: %w", t.spec.Name, err)
	}

	var issues []model.Issue

	for _, key := range table.Keys() {
		row, _ := table.Get(key)

		issues = append(issues, t.translateValues(store, row)...)

		lookupIssues, err := t.resolveLookups(store, row)
		if err != nil {
			return nil, fmt.Errorf("repair of %s failed: %w", t.spec.Name, err)
		}
		issues = append(issues, lookupIssues...)
	}

	t.logger.Debug("Repaired CSV content",
		zap.Int("rows", table.Len()),
		zap.Int("issues", len(issues)),
		zap.Bool("dirty", store.IsDirty(t.CSVPath())))

	return issues, nil
}

// translateValues applies the value mapping to every column that has
// translations defined for this object
func (t *ObjectTask) translateValues(store *cache.Store, row *model.Row) []model.Issue {
	var issues []model.Issue

	for _, col := range row.Columns() {
		if !t.values.HasField(t.spec.Name, col) {
			continue
		}

		raw := row.Get(col)
		mapped, ok := t.values.Resolve(t.spec.Name, col, raw)
		if !ok {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			issues = append(issues, model.NewIssue(
				raw, t.spec.Name, col,
				fmt.Sprintf("value %q has no translation for %s.%s", raw, t.spec.Name, col)))
			continue
		}

		if mapped != raw {
			row.Set(col, mapped)
			store.MarkDirty(t.CSVPath())
		}
	}

	return issues
}

// resolveLookups rewrites each lookup field to the identifier of the
// parent row whose match field equals the lookup value. The parent file
// is read through the shared store, so it sees rows other tasks already
// repaired in memory.
func (t *ObjectTask) resolveLookups(store *cache.Store, row *model.Row) ([]model.Issue, error) {
	var issues []model.Issue

	for _, lookup := range t.spec.Lookups {
		value := strings.TrimSpace(row.Get(lookup.Field))
		if value == "" {
			continue
		}

		parentPath := filepath.Join(t.baseDir, lookup.ParentFile)
		parentTable, err := ensureCached(store, parentPath, lookup.ParentKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load lookup parent %s: %w", lookup.ParentFile, err)
		}

		parentID, found := "", false
		for _, parentKey := range parentTable.Keys() {
			parent, _ := parentTable.Get(parentKey)
			if parent.Get(lookup.MatchField) == value {
				parentID = parent.Get(lookup.ParentKey)
				found = true
				break
			}
		}

		if !found {
			issues = append(issues, model.NewLookupIssue(
				row.Get(lookup.Field), t.spec.Name, lookup.Field,
				value, lookup.ParentObject, lookup.MatchField,
				fmt.Sprintf("no %s row has %s = %q", lookup.ParentObject, lookup.MatchField, value)))
			continue
		}

		if parentID != row.Get(lookup.Field) {
			row.Set(lookup.Field, parentID)
			store.MarkDirty(t.CSVPath())
		}
	}

	return issues, nil
}

// ensureCached returns the store's table for a file, reading the file
// from disk on first use. Rows are keyed by their identifier column;
// rows lacking an identifier get a synthesized one and the file is
// marked dirty so the new identifiers survive the flush.
func ensureCached(store *cache.Store, path, keyField string) (*cache.Table, error) {
	if store.Has(path) {
		return store.Table(path), nil
	}

	rows, err := csvio.ReadFile(path)
	if err != nil {
		return nil, err
	}

	table := store.Table(path)
	for _, row := range rows {
		key := strings.TrimSpace(row.Get(keyField))
		if key == "" {
			key = store.NextID()
			row.Set(keyField, key)
			store.MarkDirty(path)
		}
		table.Put(key, row)
	}

	return table, nil
}
