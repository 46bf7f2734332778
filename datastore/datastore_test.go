package datastore

import (
	"path/filepath"
	"testing"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) *DataStore {
	t.Helper()
	cfg := DefaultConfig(filepath.Join(t.TempDir(), "store.json"))
	cfg.AutoSaveInterval = 0
	cfg.BackupCount = 0
	ds, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig() error = %v", err)
	}
	return ds
}

func TestTableSetGet(t *testing.T) {
	ds := newTestStore(t)
	defer ds.Close()

	tbl := ds.Table("sessions")
	if err := tbl.Set("u1", doc{Name: "Kofi", Count: 3}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got doc
	ok, err := tbl.Get("u1", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if got.Name != "Kofi" || got.Count != 3 {
		t.Errorf("Get() = %+v, want {Kofi 3}", got)
	}
}

func TestTableGetMissing(t *testing.T) {
	ds := newTestStore(t)
	defer ds.Close()

	var got doc
	ok, err := ds.Table("sessions").Get("nobody", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true for missing key, want false")
	}
}

func TestTableHasDelete(t *testing.T) {
	ds := newTestStore(t)
	defer ds.Close()

	tbl := ds.Table("contacts")
	if err := tbl.Set("u1", doc{Name: "Ada"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !tbl.Has("u1") {
		t.Error("Has(u1) = false after Set")
	}
	tbl.Delete("u1")
	if tbl.Has("u1") {
		t.Error("Has(u1) = true after Delete")
	}
	// deleting a missing key is a no-op
	tbl.Delete("u1")
}

func TestTableAll(t *testing.T) {
	ds := newTestStore(t)
	defer ds.Close()

	tbl := ds.Table("groups")
	for _, k := range []string{"g1", "g2", "g3"} {
		if err := tbl.Set(k, doc{Name: k}); err != nil {
			t.Fatalf("Set(%s) error = %v", k, err)
		}
	}
	all := tbl.All()
	if len(all) != 3 {
		t.Fatalf("All() returned %d entries, want 3", len(all))
	}
	if _, ok := all["g2"]; !ok {
		t.Error("All() missing key g2")
	}
}

func TestTablesAreIndependent(t *testing.T) {
	ds := newTestStore(t)
	defer ds.Close()

	if err := ds.Table("a").Set("k", doc{Name: "a"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if ds.Table("b").Has("k") {
		t.Error("key written to table a is visible in table b")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	cfg := DefaultConfig(path)
	cfg.AutoSaveInterval = 0
	cfg.BackupCount = 0
	ds, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig() error = %v", err)
	}
	if err := ds.Table("sessions").Set("u1", doc{Name: "Ama", Count: 7}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := ds.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	cfg2 := DefaultConfig(path)
	cfg2.AutoSaveInterval = 0
	cfg2.BackupCount = 0
	ds2, err := NewWithConfig(cfg2)
	if err != nil {
		t.Fatalf("reopen NewWithConfig() error = %v", err)
	}
	defer ds2.Close()

	var got doc
	ok, err := ds2.Table("sessions").Get("u1", &got)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if !ok || got.Name != "Ama" || got.Count != 7 {
		t.Errorf("Get() after reopen = %+v ok=%v, want {Ama 7} true", got, ok)
	}
}

func TestClosedStoreRejectsWrites(t *testing.T) {
	ds := newTestStore(t)
	tbl := ds.Table("sessions")
	if err := ds.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := tbl.Set("u1", doc{}); err == nil {
		t.Error("Set() on closed store returned nil error")
	}
	if _, err := tbl.Get("u1", nil); err == nil {
		t.Error("Get() on closed store returned nil error")
	}
}
