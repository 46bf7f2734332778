// Package datastore is a file-backed key-value store organized into named
// tables. Values are stored as raw JSON; each table maps string keys to one
// JSON document. The whole store persists to a single file with atomic
// writes, periodic auto-save, and rotating backups.
package datastore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config holds configuration options for the DataStore.
type Config struct {
	FilePath         string
	AutoSaveInterval time.Duration
	BackupCount      int // number of backup files to keep
}

// DefaultConfig returns a default configuration.
func DefaultConfig(filePath string) *Config {
	return &Config{
		FilePath:         filePath,
		AutoSaveInterval: 10 * time.Second,
		BackupCount:      3,
	}
}

// DataStore is the root store. Safe for concurrent use.
type DataStore struct {
	data         map[string]map[string]json.RawMessage // table -> key -> document
	file         string
	mu           sync.RWMutex
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	config       *Config
	lastChecksum string
	closed       bool
	closeMu      sync.RWMutex
}

// New creates a DataStore with default configuration.
func New(filePath string) (*DataStore, error) {
	return NewWithConfig(DefaultConfig(filePath))
}

// NewWithConfig creates a DataStore with custom configuration.
func NewWithConfig(config *Config) (*DataStore, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.FilePath == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	dir := filepath.Dir(config.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	store := &DataStore{
		data:   make(map[string]map[string]json.RawMessage),
		file:   config.FilePath,
		ctx:    ctx,
		cancel: cancel,
		config: config,
	}

	if _, err := os.Stat(config.FilePath); os.IsNotExist(err) {
		if err := store.writeFileAtomic([]byte("{}")); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to create empty store file: %w", err)
		}
	} else if err == nil {
		if err := store.loadFromFile(); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to load data from file: %w", err)
		}
	} else {
		cancel()
		return nil, fmt.Errorf("failed to check file existence: %w", err)
	}

	if config.AutoSaveInterval > 0 {
		store.wg.Add(1)
		go store.autoSave()
	}

	return store, nil
}

// CreateTable provisions a table so later reads do not need existence checks.
// Creating an existing table is a no-op.
func (ds *DataStore) CreateTable(name string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if _, ok := ds.data[name]; !ok {
		ds.data[name] = make(map[string]json.RawMessage)
	}
}

// Table returns a view over the named table, provisioning it if needed.
func (ds *DataStore) Table(name string) *Table {
	ds.CreateTable(name)
	return &Table{ds: ds, name: name}
}

// TableNames returns the names of all provisioned tables.
func (ds *DataStore) TableNames() []string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	names := make([]string, 0, len(ds.data))
	for name := range ds.data {
		names = append(names, name)
	}
	return names
}

// SaveToFile forces an immediate save to disk.
func (ds *DataStore) SaveToFile() error {
	ds.closeMu.RLock()
	if ds.closed {
		ds.closeMu.RUnlock()
		return fmt.Errorf("datastore is closed")
	}
	ds.closeMu.RUnlock()

	return ds.saveToFile()
}

// Close stops background routines and performs a final save.
func (ds *DataStore) Close() error {
	ds.closeMu.Lock()
	if ds.closed {
		ds.closeMu.Unlock()
		return nil
	}
	ds.closed = true
	ds.closeMu.Unlock()

	ds.cancel()
	ds.wg.Wait()

	return ds.saveToFile()
}

// Table is a view over one named table of the store.
type Table struct {
	ds   *DataStore
	name string
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Get loads the document stored under key into dest. The boolean reports
// whether the key was present. An unmarshal failure reports not found with
// the error attached.
func (t *Table) Get(key string, dest any) (bool, error) {
	t.ds.closeMu.RLock()
	if t.ds.closed {
		t.ds.closeMu.RUnlock()
		return false, fmt.Errorf("datastore is closed")
	}
	t.ds.closeMu.RUnlock()

	t.ds.mu.RLock()
	raw, ok := t.ds.data[t.name][key]
	t.ds.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if dest == nil {
		return true, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("table %s key %s: %w", t.name, key, err)
	}
	return true, nil
}

// Set stores value under key, replacing any previous document.
func (t *Table) Set(key string, value any) error {
	t.ds.closeMu.RLock()
	if t.ds.closed {
		t.ds.closeMu.RUnlock()
		return fmt.Errorf("datastore is closed")
	}
	t.ds.closeMu.RUnlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("table %s key %s: %w", t.name, key, err)
	}

	t.ds.mu.Lock()
	defer t.ds.mu.Unlock()
	tbl, ok := t.ds.data[t.name]
	if !ok {
		tbl = make(map[string]json.RawMessage)
		t.ds.data[t.name] = tbl
	}
	tbl[key] = raw
	return nil
}

// Has reports whether key exists in the table.
func (t *Table) Has(key string) bool {
	t.ds.mu.RLock()
	defer t.ds.mu.RUnlock()
	_, ok := t.ds.data[t.name][key]
	return ok
}

// Delete removes key from the table. Missing keys are ignored.
func (t *Table) Delete(key string) {
	t.ds.mu.Lock()
	defer t.ds.mu.Unlock()
	delete(t.ds.data[t.name], key)
}

// All returns every key-document pair in the table.
func (t *Table) All() map[string]json.RawMessage {
	t.ds.mu.RLock()
	defer t.ds.mu.RUnlock()
	out := make(map[string]json.RawMessage, len(t.ds.data[t.name]))
	for k, v := range t.ds.data[t.name] {
		out[k] = v
	}
	return out
}

// Keys returns every key in the table.
func (t *Table) Keys() []string {
	t.ds.mu.RLock()
	defer t.ds.mu.RUnlock()
	keys := make([]string, 0, len(t.ds.data[t.name]))
	for k := range t.ds.data[t.name] {
		keys = append(keys, k)
	}
	return keys
}

// saveToFile saves data to disk with atomic write and integrity checking.
func (ds *DataStore) saveToFile() error {
	ds.mu.RLock()
	data, err := json.MarshalIndent(ds.data, "", "  ")
	ds.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	checksum := ds.calculateChecksum(data)
	if checksum == ds.lastChecksum {
		return nil
	}

	if ds.config.BackupCount > 0 {
		if err := ds.createBackup(); err != nil {
			log.Printf("[WARN] datastore backup failed: %v", err)
		}
	}

	if err := ds.writeFileAtomic(data); err != nil {
		return err
	}

	if err := ds.verifyFile(data); err != nil {
		return fmt.Errorf("file verification failed: %w", err)
	}

	ds.lastChecksum = checksum
	return nil
}

// loadFromFile loads data from disk with validation.
func (ds *DataStore) loadFromFile() error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	data, err := os.ReadFile(ds.file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var temp map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &temp); err != nil {
		return fmt.Errorf("invalid store file format: %w", err)
	}
	if temp == nil {
		temp = make(map[string]map[string]json.RawMessage)
	}

	ds.data = temp
	ds.lastChecksum = ds.calculateChecksum(data)
	return nil
}

// writeFileAtomic performs an atomic file write using a temp file and rename.
func (ds *DataStore) writeFileAtomic(data []byte) error {
	tmpFile := ds.file + ".tmp"

	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	file, err := os.OpenFile(tmpFile, os.O_RDWR, 0644)
	if err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to open temp file for sync: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	file.Close()

	if err := os.Rename(tmpFile, ds.file); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// verifyFile verifies that the written file matches the expected data.
func (ds *DataStore) verifyFile(expectedData []byte) error {
	actualData, err := os.ReadFile(ds.file)
	if err != nil {
		return fmt.Errorf("failed to read file for verification: %w", err)
	}

	if ds.calculateChecksum(actualData) != ds.calculateChecksum(expectedData) {
		return fmt.Errorf("file checksum mismatch")
	}

	return nil
}

// createBackup creates a timestamped backup of the current file.
func (ds *DataStore) createBackup() error {
	if _, err := os.Stat(ds.file); os.IsNotExist(err) {
		return nil
	}

	timestamp := time.Now().Format("20060102_150405")
	backupFile := fmt.Sprintf("%s.backup.%s", ds.file, timestamp)

	src, err := os.Open(ds.file)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(backupFile)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}

	ds.cleanupOldBackups()
	return nil
}

// cleanupOldBackups removes backup files beyond the configured limit.
func (ds *DataStore) cleanupOldBackups() {
	matches, err := filepath.Glob(ds.file + ".backup.*")
	if err != nil {
		return
	}
	if len(matches) <= ds.config.BackupCount {
		return
	}

	type fileInfo struct {
		path    string
		modTime time.Time
	}

	var files []fileInfo
	for _, match := range matches {
		if info, err := os.Stat(match); err == nil {
			files = append(files, fileInfo{match, info.ModTime()})
		}
	}

	for i := 0; i < len(files)-1; i++ {
		for j := i + 1; j < len(files); j++ {
			if files[i].modTime.After(files[j].modTime) {
				files[i], files[j] = files[j], files[i]
			}
		}
	}

	toRemove := len(files) - ds.config.BackupCount
	for i := 0; i < toRemove; i++ {
		os.Remove(files[i].path)
	}
}

// autoSave runs the periodic save routine.
func (ds *DataStore) autoSave() {
	defer ds.wg.Done()

	ticker := time.NewTicker(ds.config.AutoSaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ds.ctx.Done():
			return
		case <-ticker.C:
			if err := ds.saveToFile(); err != nil {
				log.Printf("[WARN] datastore auto-save error: %v", err)
			}
		}
	}
}

func (ds *DataStore) calculateChecksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Stats returns statistics about the store.
func (ds *DataStore) Stats() map[string]any {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	keys := 0
	for _, tbl := range ds.data {
		keys += len(tbl)
	}
	return map[string]any{
		"tables":    len(ds.data),
		"keys":      keys,
		"file_path": ds.file,
	}
}
