package task

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/David-Botos/record-migrate/pkg/cache"
	"github.com/David-Botos/record-migrate/pkg/config"
	"github.com/David-Botos/record-migrate/pkg/csvio"
	"github.com/David-Botos/record-migrate/pkg/mapping"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func newTestTask(t *testing.T, spec config.ObjectSpec, baseDir string, values mapping.ValueMap) *ObjectTask {
	t.Helper()
	if spec.File == "" {
		spec.File = spec.Name + ".csv"
	}
	if spec.Backup == "" {
		spec.Backup = spec.Name + "_backup.csv"
	}
	if spec.KeyField == "" {
		spec.KeyField = "Id"
	}
	if values == nil {
		values = mapping.New()
	}
	task, err := NewObjectTask(spec, baseDir, values, nil, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewObjectTask failed: %v", err)
	}
	return task
}

func TestValidateCSVReportsMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "Account.csv", "Id,Name\n1,Acme\n")

	task := newTestTask(t, config.ObjectSpec{
		Name:     "Account",
		Required: []string{"Name", "Type"},
	}, dir, nil)

	issues, err := task.ValidateCSV()
	if err != nil {
		t.Fatalf("ValidateCSV failed: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1: %+v", len(issues), issues)
	}
	if issues[0].ChildField != "Type" {
		t.Errorf("issue field = %q, want Type", issues[0].ChildField)
	}
}

func TestValidateCSVReportsEmptyRequiredValue(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "Account.csv", "Id,Name\n1,Acme\n2,\n")

	task := newTestTask(t, config.ObjectSpec{
		Name:     "Account",
		Required: []string{"Name"},
	}, dir, nil)

	issues, err := task.ValidateCSV()
	if err != nil {
		t.Fatalf("ValidateCSV failed: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1: %+v", len(issues), issues)
	}
	if issues[0].ChildValue != "2" {
		t.Errorf("issue child value = %q, want 2", issues[0].ChildValue)
	}
}

func TestValidateCSVMissingFileIsFatal(t *testing.T) {
	task := newTestTask(t, config.ObjectSpec{Name: "Account"}, t.TempDir(), nil)

	if _, err := task.ValidateCSV(); err == nil {
		t.Fatal("expected error for missing working file")
	}
}

func TestRepairCSVTranslatesValues(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "Account.csv", "Id,Type\n1,A\n2,B\n")

	values := mapping.New()
	values[mapping.Key("Account", "Type")] = map[string]string{"A": "Mapped"}

	task := newTestTask(t, config.ObjectSpec{Name: "Account"}, dir, values)
	store := cache.NewStore()

	issues, err := task.RepairCSV(store)
	if err != nil {
		t.Fatalf("RepairCSV failed: %v", err)
	}

	table := store.Table(task.CSVPath())
	row, _ := table.Get("1")
	if row.Get("Type") != "Mapped" {
		t.Errorf("Type = %q, want Mapped", row.Get("Type"))
	}
	if !store.IsDirty(task.CSVPath()) {
		t.Error("file not marked dirty after translation")
	}

	// "B" has no translation and must surface as an issue.
	if len(issues) != 1 || issues[0].ChildValue != "B" {
		t.Errorf("issues = %+v, want one for value B", issues)
	}
}

func TestRepairCSVSynthesizesIdentifiers(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "Account.csv", "Id,Name\n,Acme\n,Globex\n")

	task := newTestTask(t, config.ObjectSpec{Name: "Account"}, dir, nil)
	store := cache.NewStore()

	if _, err := task.RepairCSV(store); err != nil {
		t.Fatalf("RepairCSV failed: %v", err)
	}

	table := store.Table(task.CSVPath())
	if table.Len() != 2 {
		t.Fatalf("table has %d rows, want 2", table.Len())
	}
	first, ok := table.Get("ID0000000000000001")
	if !ok {
		t.Fatalf("synthesized key missing, keys = %v", table.Keys())
	}
	if first.Get("Id") != "ID0000000000000001" {
		t.Errorf("Id not written back into row: %q", first.Get("Id"))
	}
	if !store.IsDirty(task.CSVPath()) {
		t.Error("file not marked dirty after identifier synthesis")
	}
}

func TestRepairCSVResolvesLookupAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "UserAndGroup.csv", "Id,Name\n7,Bob\n")
	writeCSV(t, dir, "Case.csv", "Id,OwnerId\n1,Bob\n2,Nobody\n")

	task := newTestTask(t, config.ObjectSpec{
		Name: "Case",
		Lookups: []config.LookupSpec{{
			Field:        "OwnerId",
			ParentObject: "User",
			ParentFile:   "UserAndGroup.csv",
			MatchField:   "Name",
			ParentKey:    "Id",
		}},
	}, dir, nil)
	store := cache.NewStore()

	issues, err := task.RepairCSV(store)
	if err != nil {
		t.Fatalf("RepairCSV failed: %v", err)
	}

	row, _ := store.Table(task.CSVPath()).Get("1")
	if row.Get("OwnerId") != "7" {
		t.Errorf("OwnerId = %q, want 7", row.Get("OwnerId"))
	}

	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1: %+v", len(issues), issues)
	}
	if issues[0].ParentObject != "User" || issues[0].ChildValue != "Nobody" {
		t.Errorf("unresolved lookup issue = %+v", issues[0])
	}

	// Case.csv mutated, parent file untouched.
	if !store.IsDirty(task.CSVPath()) {
		t.Error("child file not marked dirty")
	}
	if store.IsDirty(filepath.Join(dir, "UserAndGroup.csv")) {
		t.Error("parent file wrongly marked dirty")
	}
}

func TestRepairCSVSeesEarlierTasksCachedRows(t *testing.T) {
	dir := t.TempDir()
	// The parent file on disk is stale; a prior task's repair already
	// rewrote it in the shared store.
	writeCSV(t, dir, "UserAndGroup.csv", "Id,Name\n7,Stale\n")
	writeCSV(t, dir, "Case.csv", "Id,OwnerId\n1,Fresh\n")

	store := cache.NewStore()
	parentTask := newTestTask(t, config.ObjectSpec{Name: "UserAndGroup", File: "UserAndGroup.csv"}, dir, nil)
	if _, err := parentTask.RepairCSV(store); err != nil {
		t.Fatalf("parent RepairCSV failed: %v", err)
	}
	parentRow, _ := store.Table(parentTask.CSVPath()).Get("7")
	parentRow.Set("Name", "Fresh")

	task := newTestTask(t, config.ObjectSpec{
		Name: "Case",
		Lookups: []config.LookupSpec{{
			Field:        "OwnerId",
			ParentObject: "User",
			ParentFile:   "UserAndGroup.csv",
			MatchField:   "Name",
			ParentKey:    "Id",
		}},
	}, dir, nil)

	issues, err := task.RepairCSV(store)
	if err != nil {
		t.Fatalf("RepairCSV failed: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %+v", issues)
	}
	row, _ := store.Table(task.CSVPath()).Get("1")
	if row.Get("OwnerId") != "7" {
		t.Errorf("OwnerId = %q, want 7 (resolved against in-memory parent)", row.Get("OwnerId"))
	}
}

func TestRepairCSVLeavesCleanFileClean(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "Account.csv", "Id,Name\n1,Acme\n")

	task := newTestTask(t, config.ObjectSpec{Name: "Account"}, dir, nil)
	store := cache.NewStore()

	issues, err := task.RepairCSV(store)
	if err != nil {
		t.Fatalf("RepairCSV failed: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("unexpected issues: %+v", issues)
	}
	if store.IsDirty(task.CSVPath()) {
		t.Error("file marked dirty although nothing changed")
	}
}

func TestRepairedRowsRoundTripThroughWriter(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "Account.csv", "Id,Name\n,Acme\n")

	task := newTestTask(t, config.ObjectSpec{Name: "Account"}, dir, nil)
	store := cache.NewStore()
	if _, err := task.RepairCSV(store); err != nil {
		t.Fatalf("RepairCSV failed: %v", err)
	}

	table := store.Table(task.CSVPath())
	rows := table.Rows()
	if err := csvio.WriteFile(task.CSVPath(), rows[0].Columns(), rows); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	reread, err := csvio.ReadFile(task.CSVPath())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if reread[0].Get("Id") != "ID0000000000000001" {
		t.Errorf("flushed Id = %q", reread[0].Get("Id"))
	}
}
