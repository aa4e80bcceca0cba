// pkg/cache/cache.go
package cache

import (
	"fmt"
	"sort"

	"github.com/David-Botos/record-migrate/pkg/model"
)

// idTag prefixes every synthesized identifier.
const idTag = "ID"

// Table holds the cached rows of one CSV file, keyed by a caller-chosen
// record key, in insertion order.
type Table struct {
	keys []string
	rows map[string]*model.Row
}

func newTable() *Table {
	return &Table{
		keys: make([]string, 0),
		rows: make(map[string]*model.Row),
	}
}

// Put stores a row under a key. A new key is appended to the table's
// insertion order; an existing key keeps its position and has its row
// replaced.
func (t *Table) Put(key string, row *model.Row) {
	if _, exists := t.rows[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.rows[key] = row
}

// Get returns the row stored under a key
func (t *Table) Get(key string) (*model.Row, bool) {
	row, ok := t.rows[key]
	return row, ok
}

// Keys returns the table's record keys in insertion order
func (t *Table) Keys() []string {
	return t.keys
}

// Rows returns the table's rows in insertion order
func (t *Table) Rows() []*model.Row {
	rows := make([]*model.Row, len(t.keys))
	for i, key := range t.keys {
		rows[i] = t.rows[key]
	}
	return rows
}

// Len returns the number of rows in the table
func (t *Table) Len() int {
	return len(t.keys)
}

// Store is the shared in-memory CSV content cache. It maps absolute
// file paths to per-file row tables, tracks which files have diverged
// from disk, and issues synthetic record identifiers.
//
// The store is written by every task during the repair pass; access is
// strictly sequential, so a later task sees (and may overwrite) rows an
// earlier task cached for the same file. It is not safe for concurrent
// use.
type Store struct {
	tables  map[string]*Table
	dirty   map[string]bool
	counter uint64
}

// NewStore creates an empty content store
func NewStore() *Store {
	return &Store{
		tables: make(map[string]*Table),
		dirty:  make(map[string]bool),
	}
}

// Table returns the row table for a file path, creating it on first use
func (s *Store) Table(path string) *Table {
	table, ok := s.tables[path]
	if !ok {
		table = newTable()
		s.tables[path] = table
	}
	return table
}

// Has reports whether a table already exists for a file path, without
// creating one
func (s *Store) Has(path string) bool {
	_, ok := s.tables[path]
	return ok
}

// PutRow stores a row under a key in a file's table
func (s *Store) PutRow(path, key string, row *model.Row) {
	s.Table(path).Put(key, row)
}

// MarkDirty records that a file's in-memory table differs from disk
func (s *Store) MarkDirty(path string) {
	s.dirty[path] = true
}

// IsDirty reports whether a file has been marked dirty
func (s *Store) IsDirty(path string) bool {
	return s.dirty[path]
}

// DirtyPaths returns every path marked dirty, sorted for deterministic
// flush order
func (s *Store) DirtyPaths() []string {
	paths := make([]string, 0, len(s.dirty))
	for path := range s.dirty {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// ClearDirty forgets all dirty markers but keeps cached tables and the
// identifier counter
func (s *Store) ClearDirty() {
	s.dirty = make(map[string]bool)
}

// NextID returns a fresh synthetic record identifier: a fixed two-letter
// tag followed by a 16-digit zero-padded counter starting at 1. No two
// calls between Clear invocations return the same value.
func (s *Store) NextID() string {
	s.counter++
	return fmt.Sprintf("%s%016d", idTag, s.counter)
}

// Clear discards all tables and dirty markers and resets the identifier
// counter, so the next NextID call starts the sequence over at 1
func (s *Store) Clear() {
	s.tables = make(map[string]*Table)
	s.dirty = make(map[string]bool)
	s.counter = 0
}
