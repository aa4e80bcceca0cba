// pkg/mapping/mapping.go
package mapping

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/David-Botos/record-migrate/pkg/csvio"
)

// Column names of the value mapping definition file.
const (
	colObjectName = "ObjectName"
	colFieldName  = "FieldName"
	colRawValue   = "RawValue"
	colValue      = "Value"
)

// ValueMap translates raw exported field values into target-compatible
// values. The outer key is trim(ObjectName)+trim(FieldName); the inner
// map translates trim(RawValue) to trim(Value).
type ValueMap map[string]map[string]string

// New creates an empty value map
func New() ValueMap {
	return make(ValueMap)
}

// Key builds the composite lookup key for an object/field pair
func Key(objectName, fieldName string) string {
	return strings.TrimSpace(objectName) + strings.TrimSpace(fieldName)
}

// Load merges the rows of a value mapping definition file into the map.
// Rows with an empty ObjectName or FieldName are skipped. A missing or
// empty file is a no-op. Repeated calls merge non-destructively into
// the existing mappings.
func (m ValueMap) Load(path string) error {
	rows, err := csvio.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load value mapping: %w", err)
	}

	for _, row := range rows {
		objectName := strings.TrimSpace(row.Get(colObjectName))
		fieldName := strings.TrimSpace(row.Get(colFieldName))
		if objectName == "" || fieldName == "" {
			continue
		}

		key := objectName + fieldName
		values, ok := m[key]
		if !ok {
			values = make(map[string]string)
			m[key] = values
		}
		values[strings.TrimSpace(row.Get(colRawValue))] = strings.TrimSpace(row.Get(colValue))
	}

	return nil
}

// HasField reports whether any translations exist for an object/field
// pair
func (m ValueMap) HasField(objectName, fieldName string) bool {
	_, ok := m[Key(objectName, fieldName)]
	return ok
}

// Resolve translates a raw value for an object/field pair. The second
// return is false when no translation is defined for the value.
func (m ValueMap) Resolve(objectName, fieldName, rawValue string) (string, bool) {
	values, ok := m[Key(objectName, fieldName)]
	if !ok {
		return "", false
	}
	value, ok := values[strings.TrimSpace(rawValue)]
	return value, ok
}
