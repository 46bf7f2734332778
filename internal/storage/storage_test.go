package storage

import (
	"path/filepath"
	"testing"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAllTablesProvisioned(t *testing.T) {
	s := newTestStorage(t)
	for _, name := range allTables {
		// reading from a provisioned table must not error or create anything lazily
		var v any
		if s.Get(name, "missing", &v) {
			t.Errorf("Get(%s, missing) = true, want false", name)
		}
	}
}

func TestUpsertContactPreservesFirstSeen(t *testing.T) {
	s := newTestStorage(t)

	s.UpsertContact(Contact{ID: "u1", Name: "Kofi"})
	var first Contact
	if !s.Get(TableContacts, "u1", &first) {
		t.Fatal("contact not stored")
	}

	s.UpsertContact(Contact{ID: "u1", Name: "Kofi A."})
	var second Contact
	if !s.Get(TableContacts, "u1", &second) {
		t.Fatal("contact lost after upsert")
	}
	if !second.FirstSeen.Equal(first.FirstSeen) {
		t.Errorf("FirstSeen changed on upsert: %v != %v", second.FirstSeen, first.FirstSeen)
	}
	if second.Name != "Kofi A." {
		t.Errorf("Name = %q, want %q", second.Name, "Kofi A.")
	}
}

func TestUpsertContactKeepsUsernameWhenBlank(t *testing.T) {
	s := newTestStorage(t)

	s.UpsertContact(Contact{ID: "u1", Name: "Ama", Username: "ama_gh"})
	s.UpsertContact(Contact{ID: "u1", Name: "Ama"})

	var c Contact
	if !s.Get(TableContacts, "u1", &c) {
		t.Fatal("contact not stored")
	}
	if c.Username != "ama_gh" {
		t.Errorf("Username = %q, want preserved %q", c.Username, "ama_gh")
	}
}

func TestGroupLifecycle(t *testing.T) {
	s := newTestStorage(t)

	s.UpsertGroup(Group{ID: "g1", Name: "VIP Signals"})
	var g Group
	if !s.Get(TableGroups, "g1", &g) {
		t.Fatal("group not stored")
	}
	if !g.Active {
		t.Error("group not active after upsert")
	}

	s.MarkGroupLeft("g1")
	if !s.Get(TableGroups, "g1", &g) {
		t.Fatal("group lost after MarkGroupLeft")
	}
	if g.Active {
		t.Error("group still active after MarkGroupLeft")
	}
	if g.LeftAt.IsZero() {
		t.Error("LeftAt not stamped")
	}

	// leaving an unknown group is a no-op
	s.MarkGroupLeft("g2")
}

func TestAllContactAndGroupIDs(t *testing.T) {
	s := newTestStorage(t)
	s.UpsertContact(Contact{ID: "u1", Name: "a"})
	s.UpsertContact(Contact{ID: "u2", Name: "b"})
	s.UpsertGroup(Group{ID: "g1", Name: "g"})

	if got := len(s.AllContactIDs()); got != 2 {
		t.Errorf("AllContactIDs() len = %d, want 2", got)
	}
	if got := len(s.AllGroupIDs()); got != 1 {
		t.Errorf("AllGroupIDs() len = %d, want 1", got)
	}
}

func TestSettings(t *testing.T) {
	s := newTestStorage(t)

	s.SetSetting("officialGroupLink", "https://t.me/joinchat/abcdefg")
	var link string
	if !s.Setting("officialGroupLink", &link) {
		t.Fatal("setting not stored")
	}
	if link != "https://t.me/joinchat/abcdefg" {
		t.Errorf("Setting = %q", link)
	}
	if s.Setting("unset", &link) {
		t.Error("Setting(unset) = true, want false")
	}
}
