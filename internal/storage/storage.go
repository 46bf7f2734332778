// Package storage provides the bot's logical tables over the datastore.
// All known tables are provisioned once at startup. Reads and writes never
// fail visibly: storage errors are logged, reads degrade to not-found and
// writes degrade to a no-op.
package storage

import (
	"log"

	"signalmentor/datastore"
)

// Logical table names. Records are keyed by user ID unless noted.
const (
	TableSessions       = "chatSessions"
	TableContext        = "conversationContext"
	TableState          = "conversationState"
	TableContacts       = "contacts"     // keyed by contact ID
	TableGroups         = "groups"       // keyed by group ID
	TableLastActivity   = "lastActivity"
	TableConfig         = "config"       // keyed by setting name
	TableAIInteractions = "aiInteractions"
)

var allTables = []string{
	TableSessions,
	TableContext,
	TableState,
	TableContacts,
	TableGroups,
	TableLastActivity,
	TableConfig,
	TableAIInteractions,
}

type Storage struct {
	ds *datastore.DataStore
}

// New opens the datastore at filePath and provisions every known table.
func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	for _, name := range allTables {
		ds.CreateTable(name)
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// Table returns the named logical table.
func (s *Storage) Table(name string) *datastore.Table {
	return s.ds.Table(name)
}

// Get loads the record under key in the named table into dest. Storage
// errors are logged and reported as not-found.
func (s *Storage) Get(table, key string, dest any) bool {
	ok, err := s.ds.Table(table).Get(key, dest)
	if err != nil {
		log.Printf("[WARN] storage get %s/%s: %v", table, key, err)
		return false
	}
	return ok
}

// Set stores value under key in the named table. Storage errors are logged;
// callers must not assume persistence succeeded.
func (s *Storage) Set(table, key string, value any) {
	if err := s.ds.Table(table).Set(key, value); err != nil {
		log.Printf("[WARN] storage set %s/%s: %v", table, key, err)
	}
}

// Stats exposes datastore statistics for diagnostics.
func (s *Storage) Stats() map[string]any {
	return s.ds.Stats()
}
