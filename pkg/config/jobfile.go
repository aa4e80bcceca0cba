// pkg/config/jobfile.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// JobFile is the YAML job definition describing which objects a run
// migrates, in order, and how their CSVs relate to each other.
type JobFile struct {
	Objects []ObjectSpec `yaml:"objects"`
	Merge   *MergeSpec   `yaml:"merge,omitempty"`
}

// ObjectSpec describes one migrated object
type ObjectSpec struct {
	Name     string       `yaml:"name"`
	File     string       `yaml:"file,omitempty"`     // Working CSV, default <Name>.csv
	Backup   string       `yaml:"backup,omitempty"`   // Backup CSV, default <Name>_backup.csv
	Table    string       `yaml:"table,omitempty"`    // Target table, default lowercase name
	KeyField string       `yaml:"keyField,omitempty"` // Identifier column, default Id
	Required []string     `yaml:"required,omitempty"` // Columns that must exist with values
	Lookups  []LookupSpec `yaml:"lookups,omitempty"`
}

// LookupSpec describes a cross-object lookup reference: Field holds a
// value that must match MatchField of a row in ParentFile, and is
// rewritten to that row's identifier during repair.
type LookupSpec struct {
	Field        string `yaml:"field"`
	ParentObject string `yaml:"parentObject"`
	ParentFile   string `yaml:"parentFile"`
	MatchField   string `yaml:"matchField"`
	ParentKey    string `yaml:"parentKey,omitempty"` // Identifier column of the parent file, default Id
}

// MergeSpec describes the pre-validation fold of two related export
// files into one
type MergeSpec struct {
	FileA  string `yaml:"fileA"`
	FileB  string `yaml:"fileB"`
	Output string `yaml:"output"`
	Dedupe bool   `yaml:"dedupe"`
	Key1   string `yaml:"key1,omitempty"`
	Key2   string `yaml:"key2,omitempty"`
}

// LoadJobFile reads and validates a YAML job definition, applying
// per-object defaults
func LoadJobFile(path string) (*JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	var jf JobFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}

	if err := jf.applyDefaultsAndValidate(); err != nil {
		return nil, fmt.Errorf("invalid job file %s: %w", path, err)
	}

	return &jf, nil
}

func (jf *JobFile) applyDefaultsAndValidate() error {
	if len(jf.Objects) == 0 {
		return errors.New("at least one object is required")
	}

	seen := make(map[string]bool)
	for i := range jf.Objects {
		obj := &jf.Objects[i]
		if obj.Name == "" {
			return fmt.Errorf("object %d has no name", i)
		}
		if seen[obj.Name] {
			return fmt.Errorf("duplicate object %s", obj.Name)
		}
		seen[obj.Name] = true

		if obj.File == "" {
			obj.File = obj.Name + ".csv"
		}
		if obj.Backup == "" {
			obj.Backup = obj.Name + "_backup.csv"
		}
		if obj.Table == "" {
			obj.Table = strings.ToLower(obj.Name)
		}
		if obj.KeyField == "" {
			obj.KeyField = "Id"
		}

		for j := range obj.Lookups {
			lookup := &obj.Lookups[j]
			if lookup.Field == "" || lookup.ParentFile == "" || lookup.MatchField == "" {
				return fmt.Errorf("object %s has an incomplete lookup definition", obj.Name)
			}
			if lookup.ParentKey == "" {
				lookup.ParentKey = "Id"
			}
		}
	}

	if jf.Merge != nil {
		if jf.Merge.FileA == "" || jf.Merge.FileB == "" || jf.Merge.Output == "" {
			return errors.New("merge requires fileA, fileB and output")
		}
		if jf.Merge.Dedupe && (jf.Merge.Key1 == "" || jf.Merge.Key2 == "") {
			return errors.New("merge dedupe requires key1 and key2")
		}
	}

	return nil
}
