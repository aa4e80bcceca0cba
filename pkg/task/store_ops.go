// pkg/task/store_ops.go
package task

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/David-Botos/record-migrate/pkg/csvio"
	"github.com/David-Botos/record-migrate/pkg/model"
)

const (
	countTimeout  = 60 * time.Second
	deleteTimeout = 5 * time.Minute
	exportBatch   = 10000
)

// Count reports how many records already exist in the target table
func (t *ObjectTask) Count(ctx context.Context) error {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s.%s", t.target.Schema(), t.spec.Table)

	queryCtx, cancel := context.WithTimeout(ctx, countTimeout)
	defer cancel()

	var count int64
	if err := t.target.Sqlx().GetContext(queryCtx, &count, query); err != nil {
		return fmt.Errorf("failed to count %s records: %w", t.spec.Name, err)
	}

	t.logger.Info("Counted target records", zap.Int64("count", count))
	return nil
}

// DeleteOldTargetRecords removes records left behind by previous
// migration runs, identified by a populated legacy identifier column.
// It reports whether anything was deleted.
func (t *ObjectTask) DeleteOldTargetRecords(ctx context.Context) (bool, error) {
	query := fmt.Sprintf(
		"DELETE FROM %s.%s WHERE legacy_id IS NOT NULL",
		t.target.Schema(), t.spec.Table,
	)

	result, err := t.target.ExecWithTimeout(ctx, query, deleteTimeout)
	if err != nil {
		return false, fmt.Errorf("failed to delete old %s records: %w", t.spec.Name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result for %s: %w", t.spec.Name, err)
	}

	t.logger.Info("Deleted old target records", zap.Int64("count", affected))
	return affected > 0, nil
}

// QueryRecords exports the object's records from the source store into
// the working CSV, overwriting it
func (t *ObjectTask) QueryRecords(ctx context.Context) error {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY 1", strings.ToUpper(t.spec.Name))

	var columns []string
	var exported []*model.Row

	err := t.source.BatchQuery(ctx, query, exportBatch, func(rows *sql.Rows) error {
		if columns == nil {
			cols, err := rows.Columns()
			if err != nil {
				return fmt.Errorf("failed to read result columns: %w", err)
			}
			columns = cols
		}

		values := make([]sql.NullString, len(columns))
		scanTargets := make([]interface{}, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return fmt.Errorf("failed to scan record: %w", err)
		}

		row := model.NewRow()
		for i, col := range columns {
			row.Set(col, values[i].String)
		}
		exported = append(exported, row)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to query %s records: %w", t.spec.Name, err)
	}

	if columns == nil {
		// Zero rows exported: keep a header so later phases still see a
		// well-formed file
		columns = t.spec.Required
	}

	if err := csvio.WriteFile(t.CSVPath(), columns, exported); err != nil {
		return fmt.Errorf("failed to write %s export: %w", t.spec.Name, err)
	}

	t.logger.Info("Exported source records",
		zap.Int("rows", len(exported)),
		zap.String("file", t.CSVPath()))
	return nil
}
