package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/David-Botos/record-migrate/pkg/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestReadFilePreservesColumnOrder(t *testing.T) {
	path := writeFile(t, t.TempDir(), "in.csv", "Id,Name,Email\n1,Bob,bob@example.com\n")

	rows, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	want := []string{"Id", "Name", "Email"}
	got := rows[0].Columns()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Columns()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if rows[0].Get("Name") != "Bob" {
		t.Errorf("Name = %q, want Bob", rows[0].Get("Name"))
	}
}

func TestReadFileStripsBOMAndTrimsHeader(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bom.csv", "\ufeffId, Name \n1,Bob\n")

	rows, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !rows[0].Has("Id") {
		t.Errorf("BOM not stripped from header: %v", rows[0].Columns())
	}
	if rows[0].Get("Name") != "Bob" {
		t.Errorf("header not trimmed: %v", rows[0].Columns())
	}
}

func TestReadFilePadsAndTruncatesRaggedRows(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ragged.csv", "Id,Name\n1\n2,Eve,extra\n")

	rows, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Get("Name") != "" {
		t.Errorf("short row not padded: %q", rows[0].Get("Name"))
	}
	if rows[1].Len() != 2 {
		t.Errorf("long row not truncated: %d columns", rows[1].Len())
	}
}

func TestReadFileEmpty(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.csv", "")

	rows, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile of empty file failed: %v", err)
	}
	if rows != nil {
		t.Errorf("expected nil rows, got %v", rows)
	}
}

func TestWriteFileAlwaysWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := WriteFile(path, []string{"Id", "Name"}, nil); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "Id,Name\n" {
		t.Errorf("file = %q, want header only", string(data))
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rt.csv")

	row := model.NewRow()
	row.Set("Id", "1")
	row.Set("Name", "with,comma")
	if err := WriteFile(path, []string{"Id", "Name"}, []*model.Row{row}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	rows, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if rows[0].Get("Name") != "with,comma" {
		t.Errorf("quoted value lost: %q", rows[0].Get("Name"))
	}
}
