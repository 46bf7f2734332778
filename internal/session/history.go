package session

import (
	"strings"
	"time"

	"signalmentor/internal/storage"
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// historyLimit caps the rolling conversation log per user.
const historyLimit = 10

// TurnRecord is one role-tagged message in the conversation history.
type TurnRecord struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationContext is the persisted rolling log for one user.
type ConversationContext struct {
	ConversationHistory []TurnRecord `json:"conversationHistory"`
	LastUpdated         time.Time    `json:"lastUpdated"`
}

// AppendTurn records one message in the user's history, evicting the oldest
// entries beyond the limit, and bumps the session's message count.
func (m *Manager) AppendTurn(userID, role, content string) {
	var ctx ConversationContext
	m.store.Get(storage.TableContext, userID, &ctx)

	ctx.ConversationHistory = append(ctx.ConversationHistory, TurnRecord{
		Role:      role,
		Content:   content,
		Timestamp: m.now(),
	})
	if n := len(ctx.ConversationHistory); n > historyLimit {
		ctx.ConversationHistory = ctx.ConversationHistory[n-historyLimit:]
	}
	ctx.LastUpdated = m.now()
	m.store.Set(storage.TableContext, userID, &ctx)

	m.UpdateSession(userID, func(s *UserSession) {
		s.MessageCount++
	})
}

// History returns the stored conversation log, oldest first, or nil.
func (m *Manager) History(userID string) []TurnRecord {
	var ctx ConversationContext
	if !m.store.Get(storage.TableContext, userID, &ctx) {
		return nil
	}
	return ctx.ConversationHistory
}

// FormatForPrompt renders the history as alternating "User:"/"Assistant:"
// lines for inclusion in an AI prompt. Empty string if no history.
func (m *Manager) FormatForPrompt(userID string) string {
	history := m.History(userID)
	if len(history) == 0 {
		return ""
	}

	lines := make([]string, 0, len(history))
	for _, turn := range history {
		label := "Assistant"
		if turn.Role == RoleUser {
			label = "User"
		}
		lines = append(lines, label+": "+turn.Content)
	}
	return strings.Join(lines, "\n")
}
