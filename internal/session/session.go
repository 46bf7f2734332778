// Package session owns per-user profile state: interests, personality,
// persuasion-approach weights, join status, and the rolling conversation
// history that gives the AI responder short-term memory.
package session

import (
	"math/rand"
	"sync"
	"time"

	"signalmentor/internal/storage"
)

// Personality is a fixed set of traits assigned once at session creation
// and immutable thereafter.
type Personality struct {
	Friendliness   int `json:"friendliness"`   // 7..10
	Enthusiasm     int `json:"enthusiasm"`     // 7..10
	Formality      int `json:"formality"`      // 3..8
	Persuasiveness int `json:"persuasiveness"` // 7..10
	Directness     int `json:"directness"`     // 5..10
}

// Approach is one persuasion tactic with a tunable effectiveness weight.
type Approach struct {
	Effectiveness float64 `json:"effectiveness"` // clamped to [0.1, 0.9]
	Description   string  `json:"description"`
}

// UserSession is the durable per-user profile. Created lazily on first
// contact, mutated on every turn, never deleted.
type UserSession struct {
	UserID               string              `json:"userId"`
	CreatedAt            time.Time           `json:"createdAt"`
	LastActive           time.Time           `json:"lastActive"`
	MessageCount         int                 `json:"messageCount"`
	Interests            map[string]int      `json:"interests"`
	Personality          Personality         `json:"personality"`
	PersuasionApproaches map[string]Approach `json:"persuasionApproaches"`
	HasJoinedGroup       bool                `json:"hasJoinedGroup"`
}

// Manager loads, caches, and persists user sessions. Safe for concurrent
// use across users; per-user calls are serialized by the turn handler.
type Manager struct {
	store *storage.Storage

	mu    sync.Mutex
	cache map[string]*UserSession
	rng   *rand.Rand

	now func() time.Time
}

// NewManager creates a Manager. seed makes personality generation
// reproducible; zero seeds from the clock.
func NewManager(store *storage.Storage, seed int64) *Manager {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Manager{
		store: store,
		cache: make(map[string]*UserSession),
		rng:   rand.New(rand.NewSource(seed)),
		now:   time.Now,
	}
}

// GetSession returns the user's session, creating and persisting a fresh
// one with randomized personality and default persuasion approaches on
// first contact. Storage failures degrade to an in-memory-only session.
func (m *Manager) GetSession(userID string) UserSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copySession(m.loadLocked(userID))
}

// UpdateSession applies mutate to the user's session, stamps LastActive,
// persists, and returns the updated copy.
func (m *Manager) UpdateSession(userID string, mutate func(*UserSession)) UserSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.loadLocked(userID)
	if mutate != nil {
		mutate(s)
	}
	s.LastActive = m.now()
	m.store.Set(storage.TableSessions, userID, s)
	return copySession(s)
}

// MarkJoinedGroup flags whether the user has joined the VIP group.
func (m *Manager) MarkJoinedGroup(userID string, joined bool) {
	m.UpdateSession(userID, func(s *UserSession) {
		s.HasJoinedGroup = joined
	})
}

// loadLocked returns the canonical cached session, loading or creating it.
// Caller holds m.mu.
func (m *Manager) loadLocked(userID string) *UserSession {
	if s, ok := m.cache[userID]; ok {
		return s
	}

	s := &UserSession{}
	if m.store.Get(storage.TableSessions, userID, s) {
		normalize(s)
		m.cache[userID] = s
		return s
	}

	now := m.now()
	s = &UserSession{
		UserID:               userID,
		CreatedAt:            now,
		LastActive:           now,
		Interests:            map[string]int{},
		Personality:          m.randomPersonality(),
		PersuasionApproaches: defaultApproaches(),
	}
	m.cache[userID] = s
	m.store.Set(storage.TableSessions, userID, s)
	return s
}

// randomPersonality draws traits within their documented ranges.
// Caller holds m.mu (the rng is not safe for concurrent use).
func (m *Manager) randomPersonality() Personality {
	return Personality{
		Friendliness:   7 + m.rng.Intn(4),  // 7-10
		Enthusiasm:     7 + m.rng.Intn(4),  // 7-10
		Formality:      3 + m.rng.Intn(6),  // 3-8
		Persuasiveness: 7 + m.rng.Intn(4),  // 7-10
		Directness:     5 + m.rng.Intn(6),  // 5-10
	}
}

// normalize repairs nil maps on sessions loaded from storage.
func normalize(s *UserSession) {
	if s.Interests == nil {
		s.Interests = map[string]int{}
	}
	if s.PersuasionApproaches == nil {
		s.PersuasionApproaches = defaultApproaches()
	}
}

func copySession(s *UserSession) UserSession {
	out := *s
	out.Interests = make(map[string]int, len(s.Interests))
	for k, v := range s.Interests {
		out.Interests[k] = v
	}
	out.PersuasionApproaches = make(map[string]Approach, len(s.PersuasionApproaches))
	for k, v := range s.PersuasionApproaches {
		out.PersuasionApproaches[k] = v
	}
	return out
}
