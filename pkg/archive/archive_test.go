package archive

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

type fakeSource struct {
	name   string
	csv    string
	backup string
}

func (s fakeSource) ObjectName() string { return s.name }
func (s fakeSource) CSVPath() string    { return s.csv }
func (s fakeSource) BackupPath() string { return s.backup }

func TestArchiveAllCopiesByteForByte(t *testing.T) {
	dir := t.TempDir()
	content := "Id,Name\n1,Bob\n"
	csvPath := filepath.Join(dir, "User.csv")
	backupPath := filepath.Join(dir, "User_backup.csv")
	if err := os.WriteFile(csvPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	sources := []Source{fakeSource{"User", csvPath, backupPath}}
	if err := ArchiveAll(zap.NewNop(), sources); err != nil {
		t.Fatalf("ArchiveAll failed: %v", err)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("backup not created: %v", err)
	}
	if string(data) != content {
		t.Errorf("backup = %q, want %q", string(data), content)
	}
}

func TestArchiveAllMissingSourceIsFatal(t *testing.T) {
	dir := t.TempDir()
	sources := []Source{fakeSource{
		"User",
		filepath.Join(dir, "absent.csv"),
		filepath.Join(dir, "backup.csv"),
	}}

	if err := ArchiveAll(zap.NewNop(), sources); err == nil {
		t.Fatal("expected error for missing source file")
	}
}

func TestArchiveAllOverwritesExistingBackup(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "Group.csv")
	backupPath := filepath.Join(dir, "Group_backup.csv")
	os.WriteFile(csvPath, []byte("new"), 0644)
	os.WriteFile(backupPath, []byte("stale backup contents"), 0644)

	sources := []Source{fakeSource{"Group", csvPath, backupPath}}
	if err := ArchiveAll(zap.NewNop(), sources); err != nil {
		t.Fatalf("ArchiveAll failed: %v", err)
	}

	data, _ := os.ReadFile(backupPath)
	if string(data) != "new" {
		t.Errorf("backup = %q, want %q", string(data), "new")
	}
}
