package cache

import (
	"testing"

	"github.com/David-Botos/record-migrate/pkg/model"
)

func TestNextIDSequence(t *testing.T) {
	store := NewStore()

	if got := store.NextID(); got != "ID0000000000000001" {
		t.Errorf("first NextID = %q, want ID0000000000000001", got)
	}
	if got := store.NextID(); got != "ID0000000000000002" {
		t.Errorf("second NextID = %q, want ID0000000000000002", got)
	}
}

func TestNextIDUnique(t *testing.T) {
	store := NewStore()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := store.NextID()
		if seen[id] {
			t.Fatalf("NextID returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestClearResetsEverything(t *testing.T) {
	store := NewStore()
	store.NextID()
	store.NextID()

	row := model.NewRow()
	row.Set("Id", "1")
	store.PutRow("/tmp/a.csv", "1", row)
	store.MarkDirty("/tmp/a.csv")

	store.Clear()

	if got := store.NextID(); got != "ID0000000000000001" {
		t.Errorf("NextID after Clear = %q, want ID0000000000000001", got)
	}
	if store.Has("/tmp/a.csv") {
		t.Error("table survived Clear")
	}
	if len(store.DirtyPaths()) != 0 {
		t.Errorf("dirty paths survived Clear: %v", store.DirtyPaths())
	}
}

func TestTableInsertionOrder(t *testing.T) {
	store := NewStore()
	table := store.Table("/tmp/b.csv")

	for _, key := range []string{"c", "a", "b"} {
		row := model.NewRow()
		row.Set("Id", key)
		table.Put(key, row)
	}

	want := []string{"c", "a", "b"}
	got := table.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTablePutReplacesWithoutReordering(t *testing.T) {
	store := NewStore()
	table := store.Table("/tmp/c.csv")

	first := model.NewRow()
	first.Set("Name", "old")
	table.Put("k1", first)

	second := model.NewRow()
	second.Set("Name", "other")
	table.Put("k2", second)

	replacement := model.NewRow()
	replacement.Set("Name", "new")
	table.Put("k1", replacement)

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if table.Keys()[0] != "k1" {
		t.Errorf("replaced key moved: keys = %v", table.Keys())
	}
	row, _ := table.Get("k1")
	if row.Get("Name") != "new" {
		t.Errorf("Get(k1) returned stale row: %q", row.Get("Name"))
	}
}

func TestDirtyTracking(t *testing.T) {
	store := NewStore()
	store.MarkDirty("/tmp/x.csv")

	if !store.IsDirty("/tmp/x.csv") {
		t.Error("IsDirty = false for marked path")
	}
	if store.IsDirty("/tmp/y.csv") {
		t.Error("IsDirty = true for unmarked path")
	}

	store.ClearDirty()
	if store.IsDirty("/tmp/x.csv") {
		t.Error("dirty marker survived ClearDirty")
	}
}
