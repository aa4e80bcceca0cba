// pkg/csvio/merge.go
package csvio

import (
	"fmt"

	"github.com/David-Botos/record-migrate/pkg/model"
)

// MergeTwo concatenates the rows of two CSV files into a single output
// file. The output header is the union of both input headers, first
// file's columns first. When dedupe is true, a row is considered a
// duplicate iff both key1Field and key2Field match an already emitted
// row exactly, and only the first occurrence is kept.
func MergeTwo(pathA, pathB, outPath string, dedupe bool, key1Field, key2Field string) error {
	rowsA, err := ReadFile(pathA)
	if err != nil {
		return fmt.Errorf("merge failed reading first input: %w", err)
	}
	rowsB, err := ReadFile(pathB)
	if err != nil {
		return fmt.Errorf("merge failed reading second input: %w", err)
	}

	columns := make([]string, 0)
	seenCols := make(map[string]bool)
	appendColumns := func(rows []*model.Row) {
		if len(rows) == 0 {
			return
		}
		for _, col := range rows[0].Columns() {
			if !seenCols[col] {
				seenCols[col] = true
				columns = append(columns, col)
			}
		}
	}
	appendColumns(rowsA)
	appendColumns(rowsB)

	merged := make([]*model.Row, 0, len(rowsA)+len(rowsB))
	seenKeys := make(map[string]bool)
	for _, row := range append(rowsA, rowsB...) {
		if dedupe {
			key := row.Get(key1Field) + "\x00" + row.Get(key2Field)
			if seenKeys[key] {
				continue
			}
			seenKeys[key] = true
		}
		merged = append(merged, row)
	}

	if err := WriteFile(outPath, columns, merged); err != nil {
		return fmt.Errorf("merge failed writing output: %w", err)
	}
	return nil
}
