// pkg/csvio/csvio.go
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/David-Botos/record-migrate/pkg/model"
)

// ReadFile reads a CSV file into ordered named-field rows. The first
// record is treated as the header; header names are trimmed and any
// UTF-8 BOM on the first name is stripped. Rows shorter than the header
// are padded with empty values and rows longer than the header are
// truncated, so every returned row carries exactly the header's columns.
// An empty file yields no rows and no error.
func ReadFile(path string) ([]*model.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Ragged rows are handled below rather than rejected outright.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	var rows []*model.Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		row := model.NewRow()
		for i, name := range header {
			if i < len(record) {
				row.Set(name, record[i])
			} else {
				row.Set(name, "")
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ReadHeader returns just the (trimmed) header of a CSV file. An empty
// file yields a nil header and no error.
func ReadHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}
	return header, nil
}

// WriteFile writes rows to a CSV file with the given header, overwriting
// any existing file. The header row is always written, even when rows is
// empty. Row values are emitted in header order; columns a row does not
// carry are written as empty strings.
func WriteFile(path string, columns []string, rows []*model.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", path, err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row.Get(col)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}
