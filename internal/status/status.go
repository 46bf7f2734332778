// Package status holds the process-scoped connection state. It is created
// once at startup, written by the transport on connect/disconnect, and read
// by whatever exposes health information. No other component mutates it.
package status

import (
	"sync"
	"time"
)

// Status tracks whether the bot transport is connected and as whom.
type Status struct {
	mu          sync.RWMutex
	connected   bool
	botUsername string
	connectedAt time.Time
}

// New returns a disconnected Status.
func New() *Status {
	return &Status{}
}

// SetConnected records a successful transport connection.
func (s *Status) SetConnected(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
	s.botUsername = username
	s.connectedAt = time.Now()
}

// SetDisconnected records a transport disconnect.
func (s *Status) SetDisconnected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
}

// Snapshot returns the current connection state.
func (s *Status) Snapshot() (connected bool, username string, since time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected, s.botUsername, s.connectedAt
}
